package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workbase/console-api/internal/core/domain"
)

const projectsCollection = "projects"

type MongoProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Status      string             `bson:"status"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	doc := mongoProject{
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Status:      string(project.Status),
		CreatedAt:   project.CreatedAt.Unix(),
		UpdatedAt:   project.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *project
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoProjectRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *MongoProjectRepository) list(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []domain.Project
	for cur.Next(ctx) {
		var mp mongoProject
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, domain.Project{
			ID:          mp.ID.Hex(),
			Name:        mp.Name,
			Description: mp.Description,
			OwnerID:     mp.OwnerID,
			Status:      domain.ProjectStatus(mp.Status),
			CreatedAt:   unixToTime(mp.CreatedAt),
			UpdatedAt:   unixToTime(mp.UpdatedAt),
		})
	}
	return projects, cur.Err()
}
