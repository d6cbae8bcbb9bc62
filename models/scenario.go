package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scenario holds the structure for the scenarios collection in mongo
type Scenario struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	RoomType  string             `json:"roomType" bson:"roomType"`
	Risks     []string           `json:"risks" bson:"risks"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
