// internal/models/store.go
package models

import (
	"database/sql/driver"
	"time"
)

// StoreNameRecord maps a globally unique slug to the owning user.
type StoreNameRecord struct {
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"userId"`
	StoreName string    `json:"storeName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is keyed by its owner; one store per user.
type Store struct {
	OwnerID            string    `json:"userId"`
	StoreName          string    `json:"storeName"`
	StoreNameSlug      string    `json:"storeNameSlug"`
	StoreDescription   string    `json:"storeDescription"`
	StoreCategory      string    `json:"storeCategory"`
	Website            Website   `json:"website"`
	HasProducts        bool      `json:"hasProducts"`
	HasCustomizedStore bool      `json:"hasCustomizedStore"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type Website struct {
	Enabled    bool   `json:"enabled"`
	TemplateID string `json:"templateId"`
	Logo       string `json:"logo,omitempty"`
	Theme      Theme  `json:"theme"`
	Hero       Hero   `json:"hero"`
}

type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
}

type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	CTAText         string `json:"ctaText"`
	Alignment       string `json:"alignment"`
	BackgroundImage string `json:"backgroundImage"`
}

// DefaultWebsite is the unpublished storefront a new store starts with.
func DefaultWebsite(storeName, logoURL string) Website {
	return Website{
		Enabled:    false,
		TemplateID: "classic",
		Logo:       logoURL,
		Theme: Theme{
			PrimaryColor:    "#000000",
			AccentColor:     "#333333",
			BackgroundColor: "#ffffff",
			TextColor:       "#000000",
			FontFamily:      "inter",
		},
		Hero: Hero{
			Title:     "Welcome to " + storeName,
			Subtitle:  "Discover amazing products",
			CTAText:   "Shop Now",
			Alignment: "left",
		},
	}
}

func (w Website) Value() (driver.Value, error) {
	return jsonValue(w)
}

func (w *Website) Scan(src interface{}) error {
	return scanJSON(src, w)
}
