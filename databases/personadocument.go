package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cordial-cms/cordial-cms/models"
)

const personaCollection = "personas"

// ErrNotFound is returned when no document matches the id
var ErrNotFound = errors.New("databases: document not found")

// PersonaDocumentDatabase contains the methods to use with the personas collection
type PersonaDocumentDatabase interface {
	List(ctx context.Context) ([]models.PersonaDocument, error)
	Get(ctx context.Context, id string) (*models.PersonaDocument, error)
	Create(ctx context.Context, doc models.PersonaDocument) (string, error)
	Replace(ctx context.Context, id string, doc models.PersonaDocument) error
}

type personaDocumentDatabase struct {
	db DatabaseHelper
}

// NewPersonaDocumentDatabase initializes a new instance of persona document database with the provided db connection
func NewPersonaDocumentDatabase(db DatabaseHelper) PersonaDocumentDatabase {
	return &personaDocumentDatabase{
		db: db,
	}
}

func (p *personaDocumentDatabase) List(ctx context.Context) ([]models.PersonaDocument, error) {
	cursor, err := p.db.Collection(personaCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []models.PersonaDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (p *personaDocumentDatabase) Get(ctx context.Context, id string) (*models.PersonaDocument, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	doc := &models.PersonaDocument{}
	err = p.db.Collection(personaCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Create inserts the document and returns its hex id. A zero id is generated.
func (p *personaDocumentDatabase) Create(ctx context.Context, doc models.PersonaDocument) (string, error) {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := p.db.Collection(personaCollection).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

// Replace overwrites every field of the document
func (p *personaDocumentDatabase) Replace(ctx context.Context, id string, doc models.PersonaDocument) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	doc.ID = objectID

	matched, err := p.db.Collection(personaCollection).ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}
