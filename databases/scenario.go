package databases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cordial-cms/cordial-cms/models"
)

const scenarioCollection = "scenarios"

// ScenarioDatabase contains the methods to use with the scenarios collection
type ScenarioDatabase interface {
	Create(ctx context.Context, s models.Scenario) (*models.Scenario, error)
	List(ctx context.Context, page int) ([]models.Scenario, error)
}

type scenarioDatabase struct {
	db DatabaseHelper
}

// NewScenarioDatabase initializes a new instance of scenario database with the provided db connection
func NewScenarioDatabase(db DatabaseHelper) ScenarioDatabase {
	return &scenarioDatabase{
		db: db,
	}
}

// Create stamps the scenario with an id and creation time and inserts it
func (s *scenarioDatabase) Create(ctx context.Context, scenario models.Scenario) (*models.Scenario, error) {
	if scenario.ID.IsZero() {
		scenario.ID = primitive.NewObjectID()
	}
	scenario.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := s.db.Collection(scenarioCollection).InsertOne(ctx, scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// List returns one page of scenarios, newest first. Pages start at 1.
func (s *scenarioDatabase) List(ctx context.Context, page int) ([]models.Scenario, error) {
	opts := newMongoPaginate(DefaultPageSize, page).getPaginatedOpts().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.db.Collection(scenarioCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	scenarios := []models.Scenario{}
	if err := cursor.All(ctx, &scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}
