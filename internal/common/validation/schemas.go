package validation

// Request schema names.
const (
	SchemaOrderStatusUpdate = "orderStatusUpdate"
	SchemaNotifyRequest     = "notifyRequest"
	SchemaSignupRequest     = "signupRequest"
	SchemaLaunchpadRequest  = "launchpadRequest"
	SchemaWebsiteUpdate     = "websiteUpdate"
)

// RequestSchemas are the JSON schemas for every write endpoint body.
var RequestSchemas = map[string]string{
	SchemaOrderStatusUpdate: `{
		"type": "object",
		"required": ["orderId", "newStatus"],
		"properties": {
			"orderId": {"type": "string", "minLength": 1},
			"newStatus": {"type": "string", "minLength": 1},
			"previousStatus": {"type": ["string", "null"]}
		}
	}`,
	SchemaNotifyRequest: `{
		"type": "object",
		"required": ["productId", "email"],
		"properties": {
			"productId": {"type": "string", "minLength": 1},
			"email": {"type": "string", "minLength": 1}
		}
	}`,
	SchemaSignupRequest: `{
		"type": "object",
		"required": ["storeName"],
		"properties": {
			"storeName": {"type": "string", "minLength": 1, "maxLength": 100},
			"email": {"type": "string"},
			"sellLocations": {"type": "array", "items": {"type": "string"}},
			"businessGoal": {"type": "string"},
			"productType": {"type": "string"}
		}
	}`,
	SchemaLaunchpadRequest: `{
		"type": "object",
		"required": ["storeName"],
		"properties": {
			"storeName": {"type": "string", "minLength": 1, "maxLength": 100},
			"logo": {"type": "string"}
		}
	}`,
	SchemaWebsiteUpdate: `{
		"type": "object",
		"minProperties": 1,
		"properties": {
			"enabled": {"type": "boolean"},
			"templateId": {"type": "string", "minLength": 1},
			"theme": {
				"type": "object",
				"properties": {
					"primaryColor": {"type": "string"},
					"accentColor": {"type": "string"},
					"backgroundColor": {"type": "string"},
					"textColor": {"type": "string"},
					"fontFamily": {"type": "string"}
				}
			},
			"hero": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"subtitle": {"type": "string"},
					"ctaText": {"type": "string"},
					"alignment": {"type": "string", "enum": ["left", "center", "right"]},
					"backgroundImage": {"type": "string"}
				}
			}
		}
	}`,
}
