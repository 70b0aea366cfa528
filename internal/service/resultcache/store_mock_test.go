package resultcache

import (
	"context"
	"sync"
)

var _ resultStore = &resultStoreMock{}

type resultStoreMock struct {
	SaveFunc func(ctx context.Context, key string, payload []byte) error
	LoadFunc func(ctx context.Context, key string) ([]byte, error)

	calls struct {
		Save []struct {
			Key     string
			Payload []byte
		}
		Load []struct {
			Key string
		}
	}
	lockSave sync.RWMutex
	lockLoad sync.RWMutex
}

func (mock *resultStoreMock) Save(ctx context.Context, key string, payload []byte) error {
	if mock.SaveFunc == nil {
		panic("resultStoreMock.SaveFunc: method is nil but resultStore.Save was just called")
	}
	callInfo := struct {
		Key     string
		Payload []byte
	}{Key: key, Payload: payload}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, key, payload)
}

func (mock *resultStoreMock) SaveCalls() []struct {
	Key     string
	Payload []byte
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *resultStoreMock) Load(ctx context.Context, key string) ([]byte, error) {
	if mock.LoadFunc == nil {
		panic("resultStoreMock.LoadFunc: method is nil but resultStore.Load was just called")
	}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, struct{ Key string }{Key: key})
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, key)
}

func (mock *resultStoreMock) LoadCalls() []struct{ Key string } {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}
