package test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// MongoMock runs fn against a mocked deployment. Queue replies with
// mt.AddMockResponses in the order the code under test sends commands.
func MongoMock(t *testing.T, fn func(mt *mtest.T)) {
	t.Helper()
	mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock)).Run("mongo", fn)
}

// Namespace "db.collection" of the mocked collection, for cursor replies.
func Namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

// Doc converts a model to the bson.D a mocked reply carries.
func Doc(t testing.TB, v interface{}) bson.D {
	t.Helper()
	b, err := bson.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	var d bson.D
	if err := bson.Unmarshal(b, &d); err != nil {
		t.Fatalf("unmarshal %T: %v", v, err)
	}
	return d
}

// Found is a single-batch cursor reply holding docs.
func Found(mt *mtest.T, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, Namespace(mt), mtest.FirstBatch, docs...)
}

// Counted is the aggregate reply CountDocuments expects.
func Counted(mt *mtest.T, n int64) bson.D {
	if n == 0 {
		return Found(mt)
	}
	return Found(mt, bson.D{{Key: "n", Value: n}})
}

// Modified is a findAndModify reply returning doc.
func Modified(doc bson.D) bson.D {
	return bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}}
}

// Sent returns the first command named name that the client sent.
func Sent(mt *mtest.T, name string) *event.CommandStartedEvent {
	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == name {
			return evt
		}
	}
	mt.Fatalf("no %s command sent", name)
	return nil
}

// SetFields decodes the $set document of a sent update command.
func SetFields(mt *mtest.T, evt *event.CommandStartedEvent) bson.M {
	raw, ok := evt.Command.Lookup("update", "$set").DocumentOK()
	if !ok {
		mt.Fatalf("%s has no $set", evt.CommandName)
	}
	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		mt.Fatalf("decode $set: %v", err)
	}
	return out
}
