package redemption

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"io"
	"sync"
)

var _ queueExporter = &queueExporterMock{}

type queueExporterMock struct {
	ExportRedemptionsFunc func(w io.Writer, rows []domain.RedemptionRequest, users map[uuid.UUID]domain.User) error

	calls struct {
		ExportRedemptions []struct {
			W     io.Writer
			Rows  []domain.RedemptionRequest
			Users map[uuid.UUID]domain.User
		}
	}
	lockExportRedemptions sync.RWMutex
}

func (mock *queueExporterMock) ExportRedemptions(w io.Writer, rows []domain.RedemptionRequest, users map[uuid.UUID]domain.User) error {
	if mock.ExportRedemptionsFunc == nil {
		panic("queueExporterMock.ExportRedemptionsFunc: method is nil but queueExporter.ExportRedemptions was just called")
	}
	callInfo := struct {
		W     io.Writer
		Rows  []domain.RedemptionRequest
		Users map[uuid.UUID]domain.User
	}{W: w, Rows: rows, Users: users}
	mock.lockExportRedemptions.Lock()
	mock.calls.ExportRedemptions = append(mock.calls.ExportRedemptions, callInfo)
	mock.lockExportRedemptions.Unlock()
	return mock.ExportRedemptionsFunc(w, rows, users)
}

func (mock *queueExporterMock) ExportRedemptionsCalls() []struct {
	W     io.Writer
	Rows  []domain.RedemptionRequest
	Users map[uuid.UUID]domain.User
} {
	mock.lockExportRedemptions.RLock()
	calls := mock.calls.ExportRedemptions
	mock.lockExportRedemptions.RUnlock()
	return calls
}
