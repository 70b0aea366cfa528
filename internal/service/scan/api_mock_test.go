package scan

import (
	"context"
	"sync"

	"github.com/plateful/mealscan/internal/domain"
)

var _ scanAPI = &scanAPIMock{}

type scanAPIMock struct {
	InitPhotoScanFunc  func(ctx context.Context) (domain.UploadTarget, error)
	UploadImageFunc    func(ctx context.Context, target domain.UploadTarget, data []byte) error
	QueuePhotoScanFunc func(ctx context.Context, scanID, dateISO string) (domain.Submission, error)
	QueueTextScanFunc  func(ctx context.Context, description, dateISO string) (domain.Submission, error)
	GetScanStatusFunc  func(ctx context.Context, scanID string) (domain.ScanSnapshot, error)

	calls struct {
		InitPhotoScan []struct{}
		UploadImage   []struct {
			Target domain.UploadTarget
			Data   []byte
		}
		QueuePhotoScan []struct {
			ScanID  string
			DateISO string
		}
		QueueTextScan []struct {
			Description string
			DateISO     string
		}
		GetScanStatus []struct {
			ScanID string
		}
	}
	lockInitPhotoScan  sync.RWMutex
	lockUploadImage    sync.RWMutex
	lockQueuePhotoScan sync.RWMutex
	lockQueueTextScan  sync.RWMutex
	lockGetScanStatus  sync.RWMutex
}

func (mock *scanAPIMock) InitPhotoScan(ctx context.Context) (domain.UploadTarget, error) {
	if mock.InitPhotoScanFunc == nil {
		panic("scanAPIMock.InitPhotoScanFunc: method is nil but scanAPI.InitPhotoScan was just called")
	}
	mock.lockInitPhotoScan.Lock()
	mock.calls.InitPhotoScan = append(mock.calls.InitPhotoScan, struct{}{})
	mock.lockInitPhotoScan.Unlock()
	return mock.InitPhotoScanFunc(ctx)
}

func (mock *scanAPIMock) InitPhotoScanCalls() []struct{} {
	mock.lockInitPhotoScan.RLock()
	calls := mock.calls.InitPhotoScan
	mock.lockInitPhotoScan.RUnlock()
	return calls
}

func (mock *scanAPIMock) UploadImage(ctx context.Context, target domain.UploadTarget, data []byte) error {
	if mock.UploadImageFunc == nil {
		panic("scanAPIMock.UploadImageFunc: method is nil but scanAPI.UploadImage was just called")
	}
	callInfo := struct {
		Target domain.UploadTarget
		Data   []byte
	}{Target: target, Data: data}
	mock.lockUploadImage.Lock()
	mock.calls.UploadImage = append(mock.calls.UploadImage, callInfo)
	mock.lockUploadImage.Unlock()
	return mock.UploadImageFunc(ctx, target, data)
}

func (mock *scanAPIMock) UploadImageCalls() []struct {
	Target domain.UploadTarget
	Data   []byte
} {
	mock.lockUploadImage.RLock()
	calls := mock.calls.UploadImage
	mock.lockUploadImage.RUnlock()
	return calls
}

func (mock *scanAPIMock) QueuePhotoScan(ctx context.Context, scanID, dateISO string) (domain.Submission, error) {
	if mock.QueuePhotoScanFunc == nil {
		panic("scanAPIMock.QueuePhotoScanFunc: method is nil but scanAPI.QueuePhotoScan was just called")
	}
	callInfo := struct {
		ScanID  string
		DateISO string
	}{ScanID: scanID, DateISO: dateISO}
	mock.lockQueuePhotoScan.Lock()
	mock.calls.QueuePhotoScan = append(mock.calls.QueuePhotoScan, callInfo)
	mock.lockQueuePhotoScan.Unlock()
	return mock.QueuePhotoScanFunc(ctx, scanID, dateISO)
}

func (mock *scanAPIMock) QueuePhotoScanCalls() []struct {
	ScanID  string
	DateISO string
} {
	mock.lockQueuePhotoScan.RLock()
	calls := mock.calls.QueuePhotoScan
	mock.lockQueuePhotoScan.RUnlock()
	return calls
}

func (mock *scanAPIMock) QueueTextScan(ctx context.Context, description, dateISO string) (domain.Submission, error) {
	if mock.QueueTextScanFunc == nil {
		panic("scanAPIMock.QueueTextScanFunc: method is nil but scanAPI.QueueTextScan was just called")
	}
	callInfo := struct {
		Description string
		DateISO     string
	}{Description: description, DateISO: dateISO}
	mock.lockQueueTextScan.Lock()
	mock.calls.QueueTextScan = append(mock.calls.QueueTextScan, callInfo)
	mock.lockQueueTextScan.Unlock()
	return mock.QueueTextScanFunc(ctx, description, dateISO)
}

func (mock *scanAPIMock) QueueTextScanCalls() []struct {
	Description string
	DateISO     string
} {
	mock.lockQueueTextScan.RLock()
	calls := mock.calls.QueueTextScan
	mock.lockQueueTextScan.RUnlock()
	return calls
}

func (mock *scanAPIMock) GetScanStatus(ctx context.Context, scanID string) (domain.ScanSnapshot, error) {
	if mock.GetScanStatusFunc == nil {
		panic("scanAPIMock.GetScanStatusFunc: method is nil but scanAPI.GetScanStatus was just called")
	}
	mock.lockGetScanStatus.Lock()
	mock.calls.GetScanStatus = append(mock.calls.GetScanStatus, struct{ ScanID string }{ScanID: scanID})
	mock.lockGetScanStatus.Unlock()
	return mock.GetScanStatusFunc(ctx, scanID)
}

func (mock *scanAPIMock) GetScanStatusCalls() []struct{ ScanID string } {
	mock.lockGetScanStatus.RLock()
	calls := mock.calls.GetScanStatus
	mock.lockGetScanStatus.RUnlock()
	return calls
}
