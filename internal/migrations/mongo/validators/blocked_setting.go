package validators

import "go.mongodb.org/mongo-driver/bson"

var BlockedSettingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"venue_id",
			"section_id",
			"reason",
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

			// Empty array blocks the whole day.
			"timings": bson.M{
				"bsonType": "array",
				"items":    timeRangeSchema,
			},

			"reason": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
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
