package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

const notesCollection = "notes"

type NoteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(notesCollection)}
}

type mongoNote struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Owner            string             `bson:"owner"`
	Title            string             `bson:"title"`
	EncryptedContent string             `bson:"encrypted_content"`
	Salt             string             `bson:"salt"`
	IV               string             `bson:"iv"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (r *NoteRepository) Insert(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNote{
		Owner:            note.Owner,
		Title:            note.Title,
		EncryptedContent: note.EncryptedContent,
		Salt:             note.Salt,
		IV:               note.IV,
		CreatedAt:        note.CreatedAt.UTC(),
		UpdatedAt:        note.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeError("insert note", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	created := *note
	created.ID = oid.Hex()
	return &created, nil
}

func (r *NoteRepository) FindByOwner(ctx context.Context, owner string) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, storeError("list notes", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*domain.Note, 0)
	for cursor.Next(ctx) {
		var mn mongoNote
		if err := cursor.Decode(&mn); err != nil {
			return nil, storeError("decode note", err)
		}
		notes = append(notes, mn.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError("list notes", err)
	}
	return notes, nil
}

// FindByID retrieves a note by id and owner. A missing note and a note
// owned by someone else both decode to ErrNoDocuments, so the two cases
// surface as the identical domain.ErrNoteNotFound.
func (r *NoteRepository) FindByID(ctx context.Context, owner, id string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMalformedNoteID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNote
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "owner": owner}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, storeError("find note", err)
	}
	return mn.toDomain(), nil
}

// Update applies the non-nil patch fields in a single $set and always
// refreshes updated_at, returning the post-update document.
func (r *NoteRepository) Update(ctx context.Context, owner, id string, patch domain.NotePatch) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMalformedNoteID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.EncryptedContent != nil {
		set["encrypted_content"] = *patch.EncryptedContent
	}
	if patch.Salt != nil {
		set["salt"] = *patch.Salt
	}
	if patch.IV != nil {
		set["iv"] = *patch.IV
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mn mongoNote
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "owner": owner}, bson.M{"$set": set}, opts).Decode(&mn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, storeError("update note", err)
	}
	return mn.toDomain(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, owner, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMalformedNoteID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "owner": owner})
	if err != nil {
		return storeError("delete note", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}

func (mn *mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:               mn.ID.Hex(),
		Owner:            mn.Owner,
		Title:            mn.Title,
		EncryptedContent: mn.EncryptedContent,
		Salt:             mn.Salt,
		IV:               mn.IV,
		CreatedAt:        mn.CreatedAt.UTC(),
		UpdatedAt:        mn.UpdatedAt.UTC(),
	}
}
