package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.PersonnelNumber
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPersonnelNumber(_ context.Context, pn string) (*model.User, error) {
	for _, u := range m.users {
		if u.PersonnelNumber == pn {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ── Mock PositionRepository ──

type mockPositionRepo struct {
	positions map[string]*model.Position
}

func newMockPositionRepo() *mockPositionRepo {
	return &mockPositionRepo{positions: make(map[string]*model.Position)}
}

func (m *mockPositionRepo) Create(_ context.Context, p *model.Position) error {
	if p.PositionID == "" {
		p.PositionID = "pos-" + p.Name
	}
	m.positions[p.PositionID] = p
	return nil
}

func (m *mockPositionRepo) GetByID(_ context.Context, id string) (*model.Position, error) {
	if p, ok := m.positions[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPositionRepo) List(_ context.Context) ([]model.Position, error) {
	var result []model.Position
	for _, p := range m.positions {
		result = append(result, *p)
	}
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	positions   *mockPositionRepo
	nextID      int
}

func newMockAssignmentRepo(positions *mockPositionRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[string]*model.Assignment),
		positions:   positions,
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if a.AssignmentID == "" {
		m.nextID++
		a.AssignmentID = fmt.Sprintf("asg-%d", m.nextID)
	}
	m.assignments[a.AssignmentID] = a
	return nil
}

func (m *mockAssignmentRepo) GetActiveByWorker(_ context.Context, workerID string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.WorkerID == workerID && a.IsActive {
			if a.Position == nil && m.positions != nil {
				if p, ok := m.positions.positions[a.PositionID]; ok {
					a.Position = p
				}
			}
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByWorker(_ context.Context, workerID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.WorkerID == workerID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) DeactivateByWorker(_ context.Context, workerID string) error {
	for _, a := range m.assignments {
		if a.WorkerID == workerID {
			a.IsActive = false
		}
	}
	return nil
}

// ── Mock WechselschichtPatternRepository ──

type mockPatternRepo struct {
	patterns map[int]*model.WechselschichtPattern
}

func newMockPatternRepo() *mockPatternRepo {
	return &mockPatternRepo{patterns: make(map[int]*model.WechselschichtPattern)}
}

func (m *mockPatternRepo) GetByWoche(_ context.Context, woche int) (*model.WechselschichtPattern, error) {
	if p, ok := m.patterns[woche]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPatternRepo) ListByWochen(_ context.Context, wochen []int) ([]model.WechselschichtPattern, error) {
	var result []model.WechselschichtPattern
	for _, w := range wochen {
		if p, ok := m.patterns[w]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPatternRepo) List(_ context.Context) ([]model.WechselschichtPattern, error) {
	var result []model.WechselschichtPattern
	for _, p := range m.patterns {
		result = append(result, *p)
	}
	return result, nil
}

// ── Mock RegularShiftTemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.RegularShiftTemplate
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.RegularShiftTemplate)}
}

func templateMockKey(positionID string, woche, year, week int) string {
	return fmt.Sprintf("%s:%d:%d:%d", positionID, woche, year, week)
}

func (m *mockTemplateRepo) Create(_ context.Context, t *model.RegularShiftTemplate) error {
	if t.TemplateID == "" {
		t.TemplateID = "tpl-" + templateMockKey(t.PositionID, t.WocheNumber, t.Year, t.CalendarWeek)
	}
	m.templates[templateMockKey(t.PositionID, t.WocheNumber, t.Year, t.CalendarWeek)] = t
	return nil
}

func (m *mockTemplateRepo) GetByKey(_ context.Context, positionID string, woche, year, week int) (*model.RegularShiftTemplate, error) {
	if t, ok := m.templates[templateMockKey(positionID, woche, year, week)]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) ListByPositionAndYears(_ context.Context, positionID string, years []int) ([]model.RegularShiftTemplate, error) {
	yearSet := make(map[int]bool)
	for _, y := range years {
		yearSet[y] = true
	}
	var result []model.RegularShiftTemplate
	for _, t := range m.templates {
		if t.PositionID == positionID && yearSet[t.Year] {
			result = append(result, *t)
		}
	}
	return result, nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts    map[string]*model.Shift // "workerID:date" → shift
	failDates map[string]bool         // 落库时返回错误的日期
	nextID    int
	creates   int
	updates   int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{
		shifts:    make(map[string]*model.Shift),
		failDates: make(map[string]bool),
	}
}

func shiftMockKey(workerID string, date time.Time) string {
	return workerID + ":" + date.Format("2006-01-02")
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	dateStr := shift.Date.Format("2006-01-02")
	if m.failDates[dateStr] {
		return errors.New("模拟落库失败")
	}
	if shift.ShiftID == "" {
		m.nextID++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.nextID)
	}
	m.creates++
	cp := *shift
	m.shifts[shiftMockKey(shift.WorkerID, shift.Date)] = &cp
	return nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	dateStr := shift.Date.Format("2006-01-02")
	if m.failDates[dateStr] {
		return errors.New("模拟落库失败")
	}
	m.updates++
	shift.Version++
	cp := *shift
	m.shifts[shiftMockKey(shift.WorkerID, shift.Date)] = &cp
	return nil
}

func (m *mockShiftRepo) GetByWorkerAndDate(_ context.Context, workerID string, date time.Time) (*model.Shift, error) {
	if s, ok := m.shifts[shiftMockKey(workerID, date)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByWorkerAndRange(_ context.Context, workerID string, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.WorkerID == workerID && !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock ImportedScheduleRepository ──

type mockImportedScheduleRepo struct {
	schedules  map[string]*model.ImportedSchedule
	failCreate bool
	nextID     int
}

func newMockImportedScheduleRepo() *mockImportedScheduleRepo {
	return &mockImportedScheduleRepo{schedules: make(map[string]*model.ImportedSchedule)}
}

func (m *mockImportedScheduleRepo) Create(_ context.Context, s *model.ImportedSchedule) error {
	if m.failCreate {
		return errors.New("模拟排班落库失败")
	}
	if s.ScheduleID == "" {
		m.nextID++
		s.ScheduleID = fmt.Sprintf("sched-%d", m.nextID)
	}
	m.schedules[s.ScheduleID] = s
	return nil
}

func (m *mockImportedScheduleRepo) GetByID(_ context.Context, id string) (*model.ImportedSchedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockImportedScheduleRepo) List(_ context.Context, offset, limit int) ([]model.ImportedSchedule, int64, error) {
	var result []model.ImportedSchedule
	for _, s := range m.schedules {
		result = append(result, *s)
	}
	return result, int64(len(m.schedules)), nil
}

// ── Mock ImportRecordRepository ──

type mockImportRecordRepo struct {
	records []*model.ImportRecord
	nextID  int
}

func newMockImportRecordRepo() *mockImportRecordRepo {
	return &mockImportRecordRepo{}
}

func (m *mockImportRecordRepo) Create(_ context.Context, r *model.ImportRecord) error {
	if r.ImportRecordID == "" {
		m.nextID++
		r.ImportRecordID = fmt.Sprintf("rec-%d", m.nextID)
	}
	m.records = append(m.records, r)
	return nil
}

func (m *mockImportRecordRepo) List(_ context.Context, offset, limit int) ([]model.ImportRecord, int64, error) {
	var result []model.ImportRecord
	for _, r := range m.records {
		result = append(result, *r)
	}
	return result, int64(len(m.records)), nil
}

// ── 聚合构造 ──

type testRepos struct {
	users     *mockUserRepo
	positions *mockPositionRepo
	asgs      *mockAssignmentRepo
	patterns  *mockPatternRepo
	templates *mockTemplateRepo
	shifts    *mockShiftRepo
	schedules *mockImportedScheduleRepo
	records   *mockImportRecordRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	positions := newMockPositionRepo()
	mocks := &testRepos{
		users:     newMockUserRepo(),
		positions: positions,
		asgs:      newMockAssignmentRepo(positions),
		patterns:  newMockPatternRepo(),
		templates: newMockTemplateRepo(),
		shifts:    newMockShiftRepo(),
		schedules: newMockImportedScheduleRepo(),
		records:   newMockImportRecordRepo(),
	}
	repo := &repository.Repository{
		User:             mocks.users,
		Position:         mocks.positions,
		Assignment:       mocks.asgs,
		Pattern:          mocks.patterns,
		Template:         mocks.templates,
		Shift:            mocks.shifts,
		ImportedSchedule: mocks.schedules,
		ImportRecord:     mocks.records,
	}
	return repo, mocks
}

// seedPattern 写入一条标准时间的轮换模式
func seedPattern(mocks *testRepos, woche int, codes []string) {
	mocks.patterns.patterns[woche] = &model.WechselschichtPattern{
		PatternID:   fmt.Sprintf("pat-%d", woche),
		WocheNumber: woche,
		PatternName: fmt.Sprintf("Woche %d", woche),
		DayCodes:    codes,
		FruehStart:  "06:00", FruehEnd: "14:00",
		SpaetStart: "14:00", SpaetEnd: "22:00",
		NachtStart: "22:00", NachtEnd: "06:00",
	}
}

// [自证通过] internal/service/mock_repos_test.go
