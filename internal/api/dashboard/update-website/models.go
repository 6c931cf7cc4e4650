// internal/api/dashboard/update-website/models.go
package updatewebsite

import "storefront-platform/internal/models"

// Input is a partial update; absent fields keep their stored value.
type Input struct {
	Enabled    *bool       `json:"enabled"`
	TemplateID *string     `json:"templateId"`
	Theme      *ThemePatch `json:"theme"`
	Hero       *HeroPatch  `json:"hero"`
}

type ThemePatch struct {
	PrimaryColor    *string `json:"primaryColor"`
	AccentColor     *string `json:"accentColor"`
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
	FontFamily      *string `json:"fontFamily"`
}

type HeroPatch struct {
	Title           *string `json:"title"`
	Subtitle        *string `json:"subtitle"`
	CTAText         *string `json:"ctaText"`
	Alignment       *string `json:"alignment"`
	BackgroundImage *string `json:"backgroundImage"`
}

type Output struct {
	Success bool           `json:"success"`
	Website models.Website `json:"website"`
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Apply merges the patch into w.
func (in *Input) Apply(w *models.Website) {
	if in.Enabled != nil {
		w.Enabled = *in.Enabled
	}
	set(&w.TemplateID, in.TemplateID)
	if t := in.Theme; t != nil {
		set(&w.Theme.PrimaryColor, t.PrimaryColor)
		set(&w.Theme.AccentColor, t.AccentColor)
		set(&w.Theme.BackgroundColor, t.BackgroundColor)
		set(&w.Theme.TextColor, t.TextColor)
		set(&w.Theme.FontFamily, t.FontFamily)
	}
	if hp := in.Hero; hp != nil {
		set(&w.Hero.Title, hp.Title)
		set(&w.Hero.Subtitle, hp.Subtitle)
		set(&w.Hero.CTAText, hp.CTAText)
		set(&w.Hero.Alignment, hp.Alignment)
		set(&w.Hero.BackgroundImage, hp.BackgroundImage)
	}
}
