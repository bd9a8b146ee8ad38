package tokenfakerepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-summary-client/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	record token.Record
	lock   sync.RWMutex

	// SaveErr, LoadErr and ClearErr are returned by the matching call when set.
	SaveErr  error
	LoadErr  error
	ClearErr error
}

func NewFakeTokensRepo() *FakeTokenRepo {
	return &FakeTokenRepo{}
}

func (tr *FakeTokenRepo) Load(_ context.Context) (token.Record, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	if tr.LoadErr != nil {
		return token.Record{}, tr.LoadErr
	}
	return tr.record, nil
}

func (tr *FakeTokenRepo) Save(_ context.Context, record token.Record) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.SaveErr != nil {
		return tr.SaveErr
	}
	tr.record = record
	return nil
}

func (tr *FakeTokenRepo) Clear(_ context.Context) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.ClearErr != nil {
		return tr.ClearErr
	}
	tr.record = token.Record{}
	return nil
}

// Current returns the stored record without going through Load.
func (tr *FakeTokenRepo) Current() token.Record {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return tr.record
}
