package database

import (
	"context"

	"github.com/mbolis/quick-forms/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultMongoDatabase = "form-builder"

// Mongo keeps forms and responses in the "forms" and "formresponses"
// collections.
type Mongo struct {
	client    *mongo.Client
	forms     *mongo.Collection
	responses *mongo.Collection
}

func OpenMongo(ctx context.Context, url string) (*Mongo, error) {
	cs, err := connstring.ParseAndValidate(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse url")
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if err = client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping")
	}

	db := client.Database(dbName)
	m := &Mongo{
		client:    client,
		forms:     db.Collection("forms"),
		responses: db.Collection("formresponses"),
	}
	if err = m.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.forms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return errors.Wrap(err, "index forms")
	}
	_, err = m.responses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formId", Value: 1}, {Key: "submittedAt", Value: -1}},
	})
	return errors.Wrap(err, "index responses")
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m *Mongo) ListForms(ctx context.Context) ([]model.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.forms.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list forms")
	}
	forms := []model.Form{}
	if err = cur.All(ctx, &forms); err != nil {
		return nil, errors.Wrap(err, "decode forms")
	}
	return forms, nil
}

func (m *Mongo) GetForm(ctx context.Context, id string) (model.Form, error) {
	form := model.Form{}
	err := m.forms.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return form, notFound("form", id)
	}
	return form, errors.Wrap(err, "get form")
}

func (m *Mongo) InsertForm(ctx context.Context, form model.Form) error {
	form.Fields = nonNilFields(form.Fields)
	_, err := m.forms.InsertOne(ctx, form)
	return errors.Wrap(err, "insert form")
}

func (m *Mongo) ReplaceForm(ctx context.Context, form model.Form) error {
	res, err := m.forms.UpdateByID(ctx, form.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: form.Title},
		{Key: "fields", Value: nonNilFields(form.Fields)},
		{Key: "updatedAt", Value: form.UpdatedAt},
	}}})
	if err != nil {
		return errors.Wrap(err, "update form")
	}
	if res.MatchedCount < 1 {
		return notFound("form", form.ID)
	}
	return nil
}

func (m *Mongo) DeleteForm(ctx context.Context, id string) error {
	res, err := m.forms.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(err, "delete form")
	}
	if res.DeletedCount < 1 {
		return notFound("form", id)
	}
	return nil
}

func (m *Mongo) ListResponses(ctx context.Context, formID string, page Page) ([]model.Response, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := m.responses.Find(ctx, bson.D{{Key: "formId", Value: formID}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}
	responses := []model.Response{}
	if err = cur.All(ctx, &responses); err != nil {
		return nil, errors.Wrap(err, "decode responses")
	}
	return responses, nil
}

func (m *Mongo) GetResponse(ctx context.Context, id string) (model.Response, error) {
	resp := model.Response{}
	err := m.responses.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&resp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return resp, notFound("response", id)
	}
	return resp, errors.Wrap(err, "get response")
}

func (m *Mongo) InsertResponse(ctx context.Context, resp model.Response) error {
	resp.Answers = nonNilAnswers(resp.Answers)
	_, err := m.responses.InsertOne(ctx, resp)
	return errors.Wrap(err, "insert response")
}

func (m *Mongo) ReplaceResponse(ctx context.Context, resp model.Response) error {
	res, err := m.responses.UpdateByID(ctx, resp.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "responses", Value: nonNilAnswers(resp.Answers)},
		{Key: "updatedAt", Value: resp.UpdatedAt},
	}}})
	if err != nil {
		return errors.Wrap(err, "update response")
	}
	if res.MatchedCount < 1 {
		return notFound("response", resp.ID)
	}
	return nil
}

func (m *Mongo) DeleteResponse(ctx context.Context, id string) error {
	res, err := m.responses.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(err, "delete response")
	}
	if res.DeletedCount < 1 {
		return notFound("response", id)
	}
	return nil
}
