package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"devevent/internal/connection"
	"devevent/internal/domain"
)

const eventsNS = "test.events"

func sampleEventDoc(oid primitive.ObjectID) bson.D {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "title", Value: "Hello, World!  Meetup"},
		{Key: "slug", Value: "hello-world-meetup"},
		{Key: "location", Value: "Berlin"},
		{Key: "date", Value: "2025-03-15"},
		{Key: "time", Value: "18:30"},
		{Key: "agenda", Value: bson.A{"Intro"}},
		{Key: "tags", Value: bson.A{"go"}},
		{Key: "createdAt", Value: created},
		{Key: "updatedAt", Value: created},
	}
}

type failingDatabase struct{ err error }

func (f failingDatabase) Acquire(context.Context) (*mongo.Database, error) { return nil, f.err }

func TestEventRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ev := &domain.Event{Title: "Conf", Slug: "conf", Agenda: []string{"a"}, Tags: []string{"t"}}
		require.NoError(mt, repo.Create(context.Background(), ev))
		_, err := primitive.ObjectIDFromHex(ev.ID)
		require.NoError(mt, err)
	})

	mt.Run("duplicate slug", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.events index: slug_1",
		}))

		ev := &domain.Event{Title: "Conf", Slug: "conf"}
		err := repo.Create(context.Background(), ev)
		require.ErrorIs(mt, err, domain.ErrDuplicateSlug)
		require.Empty(mt, ev.ID)
	})
}

func TestEventRepository_Create_AcquireFailure(t *testing.T) {
	repo := NewEventRepository(failingDatabase{err: errors.New("server selection error")})
	err := repo.Create(context.Background(), &domain.Event{Slug: "x"})
	require.EqualError(t, err, "acquire database: server selection error")
}

func TestEventRepository_GetBySlug(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch, sampleEventDoc(oid)))

		got, err := repo.GetBySlug(context.Background(), "hello-world-meetup")
		require.NoError(mt, err)
		require.Equal(mt, oid.Hex(), got.ID)
		require.Equal(mt, "Hello, World!  Meetup", got.Title)
		require.Equal(mt, "18:30", got.Time)
		require.Equal(mt, []string{"Intro"}, got.Agenda)
		require.Equal(mt, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got.CreatedAt.UTC())
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch))

		got, err := repo.GetBySlug(context.Background(), "missing")
		require.ErrorIs(mt, err, domain.ErrNotFound)
		require.Nil(mt, got)
	})
}

func TestEventRepository_GetByID_InvalidID(t *testing.T) {
	repo := NewEventRepository(failingDatabase{err: errors.New("must not be called")})
	_, err := repo.GetByID(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventRepository_Exists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	mt.Run("present", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: oid}}))

		ok, err := repo.Exists(context.Background(), oid.Hex())
		require.NoError(mt, err)
		require.True(mt, ok)
	})

	mt.Run("absent", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch))

		ok, err := repo.Exists(context.Background(), oid.Hex())
		require.NoError(mt, err)
		require.False(mt, ok)
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on test",
		}))

		ok, err := repo.Exists(context.Background(), oid.Hex())
		require.Error(mt, err)
		require.Contains(mt, err.Error(), "not authorized on test")
		require.False(mt, ok)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		ok, err := repo.Exists(context.Background(), "123")
		require.NoError(mt, err)
		require.False(mt, ok)
	})
}

func TestEventRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	mt.Run("matched", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		require.NoError(mt, repo.Update(context.Background(), &domain.Event{ID: oid.Hex(), Slug: "s"}))
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := repo.Update(context.Background(), &domain.Event{ID: oid.Hex(), Slug: "s"})
		require.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("slug taken", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "dup"}))
		err := repo.Update(context.Background(), &domain.Event{ID: oid.Hex(), Slug: "s"})
		require.ErrorIs(mt, err, domain.ErrDuplicateSlug)
	})
}

func TestEventRepository_ListAndCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch, sampleEventDoc(first), sampleEventDoc(second)))

		got, err := repo.List(context.Background(), domain.PaginationParams{Page: 1, PageSize: 10})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		require.Equal(mt, first.Hex(), got[0].ID)
		require.Equal(mt, second.Hex(), got[1].ID)
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.Count(context.Background())
		require.NoError(mt, err)
		require.Equal(mt, 3, n)
	})

	mt.Run("list by tags without tags", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		got, err := repo.ListByTags(context.Background(), nil, "", 3)
		require.NoError(mt, err)
		require.Empty(mt, got)
	})
}

func TestEventRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("created", func(mt *mtest.T) {
		repo := NewEventRepository(connection.NewReady("mongo", mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
