package validators

import "go.mongodb.org/mongo-driver/bson"

var clockTimePattern = "^([01][0-9]|2[0-3]):[0-5][0-9]$"

var weekdayLabels = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

var timeRangeSchema = bson.M{
	"bsonType": "object",
	"required": []string{"start_time", "end_time"},
	"properties": bson.M{
		"name": bson.M{
			"bsonType":  "string",
			"maxLength": 100,
		},
		"start_time": bson.M{
			"bsonType": "string",
			"pattern":  clockTimePattern,
		},
		"end_time": bson.M{
			"bsonType": "string",
			"pattern":  clockTimePattern,
		},
	},
}

var SlotSettingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"venue_id",
			"section_id",
			"name",
			"timings",
			"slot_duration_min",
			"price_per_hour",
			"max_advance_booking_days",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"section_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"start_date": bson.M{
				"bsonType": []string{"date", "null"},
			},

			"end_date": bson.M{
				"bsonType": []string{"date", "null"},
			},

			"days": bson.M{
				"bsonType": "array",
				"maxItems": 7,
				"items": bson.M{
					"bsonType": "string",
					"enum":     weekdayLabels,
				},
			},

			"timings": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items":    timeRangeSchema,
			},

			"slot_duration_min": bson.M{
				"bsonType": "int",
				"minimum":  5,
				"maximum":  480,
			},

			"price_per_hour": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"day_prices": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": []string{"double", "int", "long", "decimal"},
					"minimum":  0,
				},
			},

			"max_advance_booking_days": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  365,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
