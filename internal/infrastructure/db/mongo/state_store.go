package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

const stateCollection = "console_state"

const (
	sessionKey = "user"
	localeKey  = "language"
)

// StateStore keeps one document per key in the console_state collection.
type StateStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewStateStore(client *mongo.Client, db *mongo.Database) *StateStore {
	return &StateStore{client: client, coll: db.Collection(stateCollection)}
}

type mongoIdentity struct {
	ID    int64  `bson:"id"`
	Email string `bson:"email"`
	Name  string `bson:"name"`
	Role  string `bson:"role"`
}

type mongoSession struct {
	Key       string         `bson:"_id"`
	User      *mongoIdentity `bson:"user,omitempty"`
	Token     string         `bson:"token,omitempty"`
	UpdatedAt int64          `bson:"updated_at"`
}

type mongoLocale struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *StateStore) LoadSession(ctx context.Context) (domain.Session, error) {
	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": sessionKey}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("find session: %w", err)
	}
	return toSession(doc), nil
}

func (s *StateStore) SaveSession(ctx context.Context, sess domain.Session) error {
	doc := fromSession(sess)
	doc.UpdatedAt = time.Now().Unix()
	return s.upsert(ctx, sessionKey, doc)
}

func (s *StateStore) ClearSession(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionKey}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *StateStore) LoadLocale(ctx context.Context) (string, error) {
	var doc mongoLocale
	if err := s.coll.FindOne(ctx, bson.M{"_id": localeKey}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("find locale: %w", err)
	}
	return doc.Value, nil
}

func (s *StateStore) SaveLocale(ctx context.Context, code string) error {
	return s.upsert(ctx, localeKey, mongoLocale{Key: localeKey, Value: code, UpdatedAt: time.Now().Unix()})
}

func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *StateStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *StateStore) upsert(ctx context.Context, key string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func fromSession(sess domain.Session) mongoSession {
	doc := mongoSession{Key: sessionKey, Token: sess.Token}
	if u := sess.User; u != nil {
		doc.User = &mongoIdentity{ID: int64(u.ID), Email: u.Email, Name: u.Name, Role: u.Role}
	}
	return doc
}

func toSession(doc mongoSession) domain.Session {
	sess := domain.Session{Token: doc.Token}
	if u := doc.User; u != nil {
		sess.User = &domain.Identity{ID: uint64(u.ID), Email: u.Email, Name: u.Name, Role: u.Role}
	}
	return sess
}
