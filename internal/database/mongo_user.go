package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nokokiii/API-Engineering-Exam/internal/models"
)

// MongoUserStore keeps one document per user, with the user id as _id.
type MongoUserStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongo(ctx context.Context, uri, database, collection string) (*MongoUserStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping mongo: %w", err)
	}
	return NewMongoUserStore(client, client.Database(database).Collection(collection)), nil
}

func NewMongoUserStore(client *mongo.Client, coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{client: client, coll: coll}
}

func byID(id int64) bson.M {
	return bson.M{"_id": id}
}

func (s *MongoUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, byID(id)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) Create(ctx context.Context, name, lastname string) (*models.User, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		id, err := s.nextID(ctx)
		if err != nil {
			return nil, err
		}
		u := models.User{ID: id, Name: name, Lastname: lastname}
		_, err = s.coll.InsertOne(ctx, u)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &u, nil
	}
	return nil, fmt.Errorf("database: no free id after %d attempts", createAttempts)
}

func (s *MongoUserStore) nextID(ctx context.Context) (int64, error) {
	var last models.User
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID + 1, nil
}

func (s *MongoUserStore) Upsert(ctx context.Context, u *models.User) (bool, error) {
	res, err := s.coll.ReplaceOne(ctx, byID(u.ID), u, options.Replace().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (s *MongoUserStore) Update(ctx context.Context, id int64, p models.UserPatch) error {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Lastname != nil {
		set["lastname"] = *p.Lastname
	}
	if len(set) == 0 {
		ok, err := s.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	}

	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id int64) error {
	_, err := s.coll.DeleteOne(ctx, byID(id))
	return err
}

func (s *MongoUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoUserStore) Clear(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

func (s *MongoUserStore) Close() error {
	return s.client.Disconnect(context.Background())
}
