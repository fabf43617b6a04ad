package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

// movieFilter translates a listing query into a MongoDB filter document.
// Search text is matched literally and case-insensitively.
func movieFilter(q ports.MovieQuery) bson.M {
	filter := bson.M{}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if q.Year != nil {
		filter["year"] = *q.Year
	}
	if len(q.AllowedRatings) > 0 {
		ratings := make(bson.A, len(q.AllowedRatings))
		for i, r := range q.AllowedRatings {
			ratings[i] = string(r)
		}
		filter["ageRating"] = bson.M{"$in": ratings}
	}
	return filter
}

// movieFindOptions pages and sorts by year, newest first. _id breaks ties so
// paging is stable.
func movieFindOptions(q ports.MovieQuery) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
}
