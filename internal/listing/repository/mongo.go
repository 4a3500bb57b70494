package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/estately/estately/backend/go-services/internal/listing"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Listings are keyed
// by uuid strings in _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// filterQuery translates the optional-filter struct into a conjunctive Mongo
// query. Absent fields add no constraint.
func filterQuery(f listing.Filter) bson.M {
	q := bson.M{}
	if f.PropertyType != nil {
		q["propertyType"] = *f.PropertyType
	}
	if f.City != nil {
		q["location.city"] = bson.M{"$regex": regexp.QuoteMeta(*f.City), "$options": "i"}
	}
	if f.Bedrooms != nil {
		q["bedrooms"] = *f.Bedrooms
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	return q
}

// pageSort keeps pagination deterministic: creation time ascending with _id
// as tiebreak.
var pageSort = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (m *MongoRepo) Create(ctx context.Context, l *listing.Listing) (*listing.Listing, error) {
	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*listing.Listing, error) {
	var l listing.Listing
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (m *MongoRepo) Find(ctx context.Context, f listing.Filter, skip, limit int64) ([]*listing.Listing, error) {
	opts := options.Find().SetSort(pageSort).SetSkip(skip).SetLimit(limit)
	cur, err := m.col.Find(ctx, filterQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*listing.Listing{}
	for cur.Next(ctx) {
		var l listing.Listing
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Count(ctx context.Context, f listing.Filter) (int64, error) {
	return m.col.CountDocuments(ctx, filterQuery(f))
}

func (m *MongoRepo) Update(ctx context.Context, id string, p listing.Patch) (*listing.Listing, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.PropertyType != nil {
		set["propertyType"] = *p.PropertyType
	}
	if p.Bedrooms != nil {
		set["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		set["bathrooms"] = *p.Bathrooms
	}
	if p.SquareFootage != nil {
		set["squareFootage"] = *p.SquareFootage
	}
	if p.Features != nil {
		set["features"] = *p.Features
	}
	if p.Images != nil {
		set["images"] = *p.Images
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated listing.Listing
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
