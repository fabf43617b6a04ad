package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

const collectionMovies = "movies"

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies)}
}

type movieDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   *string            `bson:"description"`
	Year          int                `bson:"year"`
	Genres        []string           `bson:"genres"`
	Rating        float64            `bson:"rating"`
	AgeRating     string             `bson:"ageRating"`
	PosterURL     *string            `bson:"posterUrl"`
	Image         *string            `bson:"image"`
	TrailerURL    *string            `bson:"trailerUrl"`
	ExternalID    *string            `bson:"externalId"`
	IsKidFriendly bool               `bson:"isKidFriendly"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func toMovieDocument(m *domain.Movie) movieDocument {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return movieDocument{
		Title:         m.Title,
		Description:   m.Description,
		Year:          m.Year,
		Genres:        genres,
		Rating:        m.Rating,
		AgeRating:     string(m.AgeRating),
		PosterURL:     m.PosterURL,
		Image:         m.Image,
		TrailerURL:    m.TrailerURL,
		ExternalID:    m.ExternalID,
		IsKidFriendly: m.IsKidFriendly,
		CreatedAt:     m.CreatedAt.UTC().Truncate(time.Millisecond),
		UpdatedAt:     m.UpdatedAt.UTC().Truncate(time.Millisecond),
	}
}

func (d movieDocument) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Year:          d.Year,
		Genres:        d.Genres,
		Rating:        d.Rating,
		AgeRating:     domain.AgeRating(d.AgeRating),
		PosterURL:     d.PosterURL,
		Image:         d.Image,
		TrailerURL:    d.TrailerURL,
		ExternalID:    d.ExternalID,
		IsKidFriendly: d.IsKidFriendly,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// movieObjectID treats malformed ids as missing movies.
func movieObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrMovieNotFound
	}
	return oid, nil
}

func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMovieDocument(m)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := movieObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc movieDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of movies matching q and the total number of matches.
func (r *MovieRepository) List(ctx context.Context, q ports.MovieQuery) ([]*domain.Movie, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := movieFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, movieFindOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("find movies: %w", err)
	}
	defer cur.Close(ctx)

	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]*domain.Movie, len(docs))
	for i := range docs {
		movies[i] = docs[i].toDomain()
	}
	return movies, total, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	oid, err := movieObjectID(m.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMovieDocument(m)
	set := bson.M{
		"title":         doc.Title,
		"description":   doc.Description,
		"year":          doc.Year,
		"genres":        doc.Genres,
		"rating":        doc.Rating,
		"ageRating":     doc.AgeRating,
		"posterUrl":     doc.PosterURL,
		"image":         doc.Image,
		"trailerUrl":    doc.TrailerURL,
		"externalId":    doc.ExternalID,
		"isKidFriendly": doc.IsKidFriendly,
		"updatedAt":     doc.UpdatedAt,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out movieDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}
	return out.toDomain(), nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	oid, err := movieObjectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

func (r *MovieRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete movies: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MovieRepository) InsertMany(ctx context.Context, movies []*domain.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs := make([]any, len(movies))
	for i, m := range movies {
		doc := toMovieDocument(m)
		doc.ID = primitive.NewObjectID()
		docs[i] = doc
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert movies: %w", err)
	}
	return len(res.InsertedIDs), nil
}
