package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"biocard-backend/internal/assets"
)

func TestPGRepoSaveTransactionalAppliesPlanInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	owner := uuid.New()
	orphan := uuid.New()
	blob := assets.NewBlob(owner, CategoryAvatar, "image/png", []byte("png"))
	doc := Profile{Username: "alice", Avatar: assets.FormatReferenceToken(blob.ID)}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO media_assets").
		WithArgs(blob.ID, owner, blob.Category, assets.TierInline, blob.Data, blob.MimeType, blob.SizeBytes, blob.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM media_assets WHERE id").
		WithArgs(orphan).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE profiles").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), owner).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan := assets.CommitPlan{Creates: []assets.Blob{blob}, Deletes: []uuid.UUID{orphan}}
	if err := repo.SaveTransactional(context.Background(), owner, doc, plan); err != nil {
		t.Fatalf("SaveTransactional: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveTransactionalRollsBackOnMissingProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	owner := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), owner).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.SaveTransactional(context.Background(), owner, Profile{}, assets.CommitPlan{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLoadUnmarshalsDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	owner := uuid.New()
	raw, _ := json.Marshal(Profile{Username: "alice", Bio: "hi"})

	mock.ExpectQuery("SELECT owner_id, username, document, updated_at").
		WithArgs("Alice").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "username", "document", "updated_at"}).
			AddRow(owner, "alice", raw, time.Now().UTC()))

	rec, err := repo.Load(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.OwnerID != owner || rec.Document.Bio != "hi" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestPGRepoLoadMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT owner_id, username, document, updated_at").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "username", "document", "updated_at"}))

	if _, err := repo.Load(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
