package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

func saveData(sess *session) model.SaveData {
	return model.SaveData{
		Player:    sess.state.Player.Clone(),
		Week:      sess.state.Week,
		Leagues:   sess.state.Divisions.Clone(),
		LastSaved: time.Now().UTC(),
	}
}

// write encodes the session and stores it under slot.
func (s *Service) write(ctx context.Context, sess *session, slot string) (repository.Slot, error) {
	start := time.Now()
	data := saveData(sess)
	doc, err := repository.Encode(data)
	if err != nil {
		return repository.Slot{}, err
	}
	meta := repository.SlotOf(slot, data)
	if err := s.store.Put(ctx, meta, doc); err != nil {
		return repository.Slot{}, err
	}
	metrics.RecordSaveSuccess(float64(time.Since(start).Milliseconds()))
	sess.dirty.Store(false)
	return meta, nil
}

// markDirty schedules a debounced autosave. Must run on the career's worker.
func (s *Service) markDirty(sess *session) {
	sess.dirty.Store(true)
	if s.autosaveDebounce <= 0 {
		return
	}
	if sess.saveWait != nil {
		sess.saveWait.Reset(s.autosaveDebounce)
		return
	}
	id := sess.id
	sess.saveWait = time.AfterFunc(s.autosaveDebounce, func() { s.submitAutosave(id) })
}

func (s *Service) submitAutosave(id string) {
	ctx := s.background()
	_, err := s.exec(ctx, id, "", "autosave", false, func(sess *session) (any, error) {
		sess.saveWait = nil
		s.autosave(ctx, sess)
		return nil, nil
	})
	if err != nil && !isStopping(err) {
		s.logger.Warn(ctx, "autosave not scheduled", logger.Career(id), logger.Error(err))
	}
}

// autosave persists sess. Failures are logged and counted, never returned;
// the session stays dirty so the retry job picks it up.
func (s *Service) autosave(ctx context.Context, sess *session) {
	_, err := s.write(ctx, sess, sess.slot)
	switch {
	case err == nil:
		s.logger.Debug(ctx, "autosaved", logger.Career(sess.id), logger.String("slot", sess.slot))
	case errors.Is(err, repository.ErrPristineCareer):
		metrics.RecordSaveSkipped()
		sess.dirty.Store(false)
	default:
		metrics.RecordSaveFailure()
		s.logger.Error(ctx, "autosave failed", logger.Career(sess.id), logger.String("slot", sess.slot), logger.Error(err))
	}
}

// retryDirty resubmits careers whose last autosave failed.
func (s *Service) retryDirty() {
	for _, sess := range s.snapshotSessions() {
		if sess.dirty.Load() {
			s.submitAutosave(sess.id)
		}
	}
}

func (s *Service) background() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.runCtx == nil {
		return context.Background()
	}
	return s.runCtx
}

// Save writes the career to slot, or to its current slot when slot is empty.
// An untouched default career is refused with repository.ErrPristineCareer.
func (s *Service) Save(ctx context.Context, careerID, slot string) (repository.Slot, error) {
	return call(ctx, s, careerID, "", "save", false, func(sess *session) (repository.Slot, error) {
		if slot == "" {
			slot = sess.slot
		}
		if err := repository.ValidSlot(slot); err != nil {
			return repository.Slot{}, err
		}
		meta, err := s.write(ctx, sess, slot)
		if err != nil {
			if !errors.Is(err, repository.ErrPristineCareer) {
				metrics.RecordSaveFailure()
			}
			return repository.Slot{}, fmt.Errorf("save %s: %w", slot, err)
		}
		sess.slot = slot
		s.logger.Info(ctx, "career saved", logger.Career(sess.id), logger.String("slot", slot))
		return meta, nil
	})
}

// Load opens the save in slot as a new live career. A corrupt document is
// rejected with repository.ErrCorruptSave and no career is created.
func (s *Service) Load(ctx context.Context, slot string) (CareerView, error) {
	if err := s.ready(); err != nil {
		return CareerView{}, err
	}
	if err := repository.ValidSlot(slot); err != nil {
		return CareerView{}, err
	}
	doc, err := s.store.Get(ctx, slot)
	if err != nil {
		return CareerView{}, fmt.Errorf("load %s: %w", slot, err)
	}
	data, err := repository.Decode(doc)
	if err != nil {
		metrics.RecordCorruptLoad()
		s.logger.Warn(ctx, "corrupt save rejected", logger.String("slot", slot), logger.Error(err))
		return CareerView{}, fmt.Errorf("load %s: %w", slot, err)
	}
	rng, err := s.newRandom()
	if err != nil {
		return CareerView{}, err
	}
	sess := &session{
		id:   uuid.NewString(),
		slot: slot,
		rng:  rng,
		state: progression.State{
			Player:    data.Player,
			Divisions: data.Leagues,
			Week:      data.Week,
		},
	}
	s.addSession(sess)
	s.logger.Info(ctx, "career loaded", logger.Career(sess.id), logger.String("slot", slot))
	return s.Career(ctx, sess.id)
}

// DeleteSave removes slot. confirm must be set.
func (s *Service) DeleteSave(ctx context.Context, slot string, confirm bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("delete %s: %w", slot, repository.ErrUnconfirmed)
	}
	if err := repository.ValidSlot(slot); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, slot); err != nil {
		return fmt.Errorf("delete %s: %w", slot, err)
	}
	s.logger.Info(ctx, "save deleted", logger.String("slot", slot))
	return nil
}

// ListSaves returns stored slots, newest first.
func (s *Service) ListSaves(ctx context.Context) ([]repository.Slot, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// History returns the latest recorded matches of a career.
func (s *Service) History(ctx context.Context, careerID string, limit int) ([]recorder.MatchRecord, error) {
	if _, err := s.lookup(careerID); err != nil {
		return nil, err
	}
	return s.recorder.Matches(ctx, careerID, limit)
}
