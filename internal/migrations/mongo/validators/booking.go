package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"phone",
			"car_model",
			"license_plate",
			"date",
			"time",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 120,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 32,
			},

			"car_model": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 120,
			},

			"license_plate": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"time": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 16,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"rejected",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var SlotLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"expires_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
