package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"techstore-backend/internal/domains/user"
	"techstore-backend/internal/domains/user/model"
	"techstore-backend/internal/shared"
)

// ProfileEditor giữ draft profile của một session.
// saving là guard duy nhất cho commit: commit thứ hai trong lúc saving bị từ chối.
type ProfileEditor struct {
	mu       sync.Mutex
	draft    Draft
	revision uint64
	saving   bool
}

func NewProfileEditor(u *model.User) *ProfileEditor {
	e := &ProfileEditor{}
	if u != nil {
		e.reset(u)
	}
	return e
}

// Sync reset draft khi bản committed đổi revision
func (e *ProfileEditor) Sync(u *model.User) {
	if u == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if u.Revision == e.revision {
		return
	}
	e.reset(u)
}

func (e *ProfileEditor) reset(u *model.User) {
	e.draft = draftOf(u)
	e.revision = u.Revision
}

// Edit chỉ sửa draft; User committed không đổi
func (e *ProfileEditor) Edit(patch DraftPatch) EditorView {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft = patch.applyTo(e.draft)
	return e.viewLocked()
}

func (e *ProfileEditor) View() EditorView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

func (e *ProfileEditor) viewLocked() EditorView {
	return EditorView{
		Draft:    e.draft,
		Saving:   e.saving,
		Revision: e.revision,
	}
}

// Commit validate draft rồi giao cho owner thay các field editable.
// Validate chạy ngoài lock. Lock của editor được nhả trước khi gọi owner: owner sẽ Sync lại editor.
// Record committed đổi revision sau khi lấy draft → ErrStaleDraft, không ghi đè.
func (e *ProfileEditor) Commit(ctx context.Context, owner user.Owner) (*model.User, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, user.ErrSaveInProgress
	}
	draft := e.draft.Normalize()
	revision := e.revision
	e.mu.Unlock()

	if err := shared.FromValidation(draft.Validate()); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, user.ErrSaveInProgress
	}
	e.saving = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.saving = false
		e.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated, err := owner.Apply(func(current *model.User) (*model.User, error) {
		if current == nil {
			return nil, user.ErrUserNotFound
		}
		if current.Revision != revision {
			return nil, user.ErrStaleDraft
		}
		return current.WithProfile(draft.fields()), nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to commit profile")
		return nil, err
	}

	log.Info().
		Uint64("revision", updated.Revision).
		Msg("Profile committed")

	return updated, nil
}
