package taskhandler

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	taskhistorystore "task-flow-backend/lib/task/history-store"
	taskstore "task-flow-backend/lib/task/store"
	submissionstore "task-flow-backend/lib/task/submission-store"
	"task-flow-backend/models"
	dbmodels "task-flow-backend/models/db"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	testSpace      = "space-1"
	otherSpace     = "space-2"
	adminID        = "admin-1"
	managerID      = "manager-1"
	otherManagerID = "manager-2"
	employeeID     = "emp-1"
	colleagueID    = "emp-2"
	outsiderID     = "emp-3"
	strangerID     = "emp-x"
)

// memDB общее состояние фейковых хранилищ
type memDB struct {
	mu          sync.Mutex
	clock       time.Time
	tasks       map[string]dbmodels.Task
	submissions map[string]dbmodels.TaskSubmission
	history     []dbmodels.TaskHistory
	users       map[string]dbmodels.User
	// failTaskChange ошибка, которую вернёт ChangeStatus задачи
	failTaskChange error
}

func newMemDB() *memDB {
	m := &memDB{
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		tasks:       map[string]dbmodels.Task{},
		submissions: map[string]dbmodels.TaskSubmission{},
		users:       map[string]dbmodels.User{},
	}
	m.addUser(testSpace, adminID, "Админ", models.AdminRole)
	m.addUser(testSpace, managerID, "Руководитель", models.ManagerRole)
	m.addUser(testSpace, otherManagerID, "Другой руководитель", models.ManagerRole)
	m.addUser(testSpace, employeeID, "Иванов", models.EmployeeRole)
	m.addUser(testSpace, colleagueID, "Петров", models.EmployeeRole)
	m.addUser(testSpace, outsiderID, "Сидоров", models.EmployeeRole)
	m.addUser(otherSpace, strangerID, "Чужой", models.EmployeeRole)
	return m
}

func (m *memDB) addUser(spaceID, id, name string, role models.UserRole) {
	m.users[id] = dbmodels.User{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
		Name:  name,
		Email: id + "@corp.ru",
		Role:  role,
	}
}

// tick монотонное время создания записей, чтобы сортировка была детерминированной
func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) stores() stores {
	return stores{
		task:       &memTaskStore{db: m},
		submission: &memSubmissionStore{db: m},
		history:    &memHistoryStore{db: m},
	}
}

// transaction при ошибке возвращает состояние на момент начала, как откат в БД
func (m *memDB) transaction(fn func(s stores) error) error {
	m.mu.Lock()
	tasks := maps.Clone(m.tasks)
	submissions := maps.Clone(m.submissions)
	history := slices.Clone(m.history)
	m.mu.Unlock()
	if err := fn(m.stores()); err != nil {
		m.mu.Lock()
		m.tasks, m.submissions, m.history = tasks, submissions, history
		m.mu.Unlock()
		return err
	}
	return nil
}

type memTaskStore struct {
	db *memDB
}

func (s *memTaskStore) Create(rec dbmodels.Task) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.db.tick()
	rec.UpdatedAt = rec.CreatedAt
	s.db.tasks[rec.ID] = rec
	return rec.ID, nil
}

func (s *memTaskStore) GetByID(spaceID, id string) (*dbmodels.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec, ok := s.db.tasks[id]
	if !ok || rec.SpaceID != spaceID {
		return nil, nil
	}
	rec.AssignedTo = slices.Clone(rec.AssignedTo)
	if user, ok := s.db.users[rec.AssignedByID]; ok {
		rec.AssignedBy = &user
	}
	return &rec, nil
}

func (s *memTaskStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec, ok := s.db.tasks[id]
	if !ok || rec.SpaceID != spaceID {
		return errors.New("задача не найдена")
	}
	applyTaskUpdates(&rec, updMap)
	s.db.tasks[id] = rec
	return nil
}

func (s *memTaskStore) ChangeStatus(spaceID, id string, from []models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.failTaskChange != nil {
		return false, s.db.failTaskChange
	}
	rec, ok := s.db.tasks[id]
	if !ok || rec.SpaceID != spaceID || !slices.Contains(from, rec.Status) {
		return false, nil
	}
	applyTaskUpdates(&rec, updMap)
	s.db.tasks[id] = rec
	return true, nil
}

func (s *memTaskStore) Delete(spaceID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if rec, ok := s.db.tasks[id]; ok && rec.SpaceID == spaceID {
		delete(s.db.tasks, id)
	}
	return nil
}

func (s *memTaskStore) List(spaceID string, filter taskstore.Filter) ([]dbmodels.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	list := []dbmodels.Task{}
	for _, rec := range s.db.tasks {
		if rec.SpaceID != spaceID {
			continue
		}
		if filter.AssignedByID != "" && rec.AssignedByID != filter.AssignedByID {
			continue
		}
		if filter.AssigneeID != "" && !rec.IsAssignee(filter.AssigneeID) {
			continue
		}
		list = append(list, rec)
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	return list, nil
}

type memSubmissionStore struct {
	db *memDB
}

func (s *memSubmissionStore) Create(rec dbmodels.TaskSubmission) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.db.tick()
	rec.UpdatedAt = rec.CreatedAt
	s.db.submissions[rec.ID] = rec
	return rec.ID, nil
}

func (s *memSubmissionStore) GetByID(spaceID, id string) (*dbmodels.TaskSubmission, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec, ok := s.db.submissions[id]
	if !ok || rec.SpaceID != spaceID {
		return nil, nil
	}
	s.preload(&rec)
	return &rec, nil
}

func (s *memSubmissionStore) GetLatest(spaceID, taskRef string) (*dbmodels.TaskSubmission, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var latest *dbmodels.TaskSubmission
	for _, rec := range s.db.submissions {
		if rec.SpaceID != spaceID || rec.TaskRef != taskRef {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			item := rec
			latest = &item
		}
	}
	return latest, nil
}

func (s *memSubmissionStore) ChangeStatus(spaceID, id string, from models.SubmissionStatus, updMap map[string]interface{}) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec, ok := s.db.submissions[id]
	if !ok || rec.SpaceID != spaceID || rec.Status != from {
		return false, nil
	}
	applySubmissionUpdates(&rec, updMap)
	s.db.submissions[id] = rec
	return true, nil
}

func (s *memSubmissionStore) List(spaceID string, filter submissionstore.Filter) ([]dbmodels.TaskSubmission, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	list := []dbmodels.TaskSubmission{}
	for _, rec := range s.db.submissions {
		if rec.SpaceID != spaceID {
			continue
		}
		if filter.TaskRef != "" && rec.TaskRef != filter.TaskRef {
			continue
		}
		if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.AssignedByID != "" {
			task, ok := s.db.tasks[rec.TaskRef]
			if !ok || task.AssignedByID != filter.AssignedByID {
				continue
			}
		}
		s.preload(&rec)
		list = append(list, rec)
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	return list, nil
}

func (s *memSubmissionStore) preload(rec *dbmodels.TaskSubmission) {
	if task, ok := s.db.tasks[rec.TaskRef]; ok {
		rec.Task = &task
	}
	if user, ok := s.db.users[rec.EmployeeID]; ok {
		rec.Employee = &user
	}
}

type memHistoryStore struct {
	db *memDB
}

func (s *memHistoryStore) Create(rec dbmodels.TaskHistory) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.db.tick()
	s.db.history = append(s.db.history, rec)
	return rec.ID, nil
}

func (s *memHistoryStore) List(spaceID, taskRef string) ([]dbmodels.TaskHistory, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	list := []dbmodels.TaskHistory{}
	for _, rec := range s.db.history {
		if rec.SpaceID == spaceID && rec.TaskRef == taskRef {
			list = append(list, rec)
		}
	}
	return list, nil
}

type memUsersStore struct {
	db *memDB
}

func (s *memUsersStore) GetByIDs(spaceID string, userIDs []string) ([]dbmodels.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	list := []dbmodels.User{}
	for _, id := range userIDs {
		if user, ok := s.db.users[id]; ok && user.SpaceID == spaceID {
			list = append(list, user)
		}
	}
	return list, nil
}

type memCounter struct {
	task       int64
	submission int64
	err        error
}

func (c *memCounter) NextTaskID(_ context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.task++
	return fmt.Sprintf("%s%d", models.TaskIDPrefix, 9999+c.task), nil
}

func (c *memCounter) NextSubmissionID(_ context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.submission++
	return fmt.Sprintf("%s%d", models.SubmissionIDPrefix, 9999+c.submission), nil
}

type memFileStorage struct {
	uploaded []models.File
	err      error
}

func (f *memFileStorage) UploadAttachment(_ context.Context, spaceID string, file models.File) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, file)
	return "https://files.local/" + spaceID + "/" + file.FileName, nil
}

func (f *memFileStorage) MakeBucket(_ context.Context) error {
	return nil
}

type memNotifier struct {
	assigned []string
	approved []string
	rejected []string
}

func (n *memNotifier) TaskAssigned(task dbmodels.Task, assignees []dbmodels.User) {
	for _, user := range assignees {
		n.assigned = append(n.assigned, user.ID)
	}
}

func (n *memNotifier) SubmissionApproved(task dbmodels.Task, employee *dbmodels.User) {
	if employee != nil {
		n.approved = append(n.approved, employee.ID)
	}
}

func (n *memNotifier) SubmissionRejected(task dbmodels.Task, employee *dbmodels.User, reason string) {
	if employee != nil {
		n.rejected = append(n.rejected, employee.ID+": "+reason)
	}
}

type testEnv struct {
	db       *memDB
	h        impl
	counter  *memCounter
	files    *memFileStorage
	notifier *memNotifier
	now      time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		db:       newMemDB(),
		counter:  &memCounter{},
		files:    &memFileStorage{},
		notifier: &memNotifier{},
		now:      time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
	}
	env.h = impl{
		stores:      env.db.stores(),
		counter:     env.counter,
		usersStore:  &memUsersStore{db: env.db},
		fileStorage: env.files,
		notifier:    env.notifier,
		inTransaction: env.db.transaction,
		now: func() time.Time {
			return env.now
		},
	}
	return env
}

func (e *testEnv) task(id string) dbmodels.Task {
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	return e.db.tasks[id]
}

func (e *testEnv) submission(id string) dbmodels.TaskSubmission {
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	return e.db.submissions[id]
}

func (e *testEnv) historyLen() int {
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	return len(e.db.history)
}

func applyTaskUpdates(rec *dbmodels.Task, updMap map[string]interface{}) {
	for field, value := range updMap {
		switch field {
		case "title":
			rec.Title = value.(string)
		case "description":
			rec.Description = value.(string)
		case "status":
			rec.Status = value.(models.TaskStatus)
		case "assigned_to":
			rec.AssignedTo = value.(pq.StringArray)
		case "start_date":
			rec.StartDate = toTime(value)
		case "deadline":
			rec.Deadline = toTime(value)
		case "attachment":
			rec.Attachment = value.(string)
		case "rejection_reason":
			rec.RejectionReason = toString(value)
		case "task_started":
			rec.TaskStarted = toTime(value)
		case "submitted_at":
			rec.SubmittedAt = toTime(value)
		case "marks":
			rec.Marks = value.(int)
		default:
			panic("неизвестное поле задачи: " + field)
		}
	}
}

func applySubmissionUpdates(rec *dbmodels.TaskSubmission, updMap map[string]interface{}) {
	for field, value := range updMap {
		switch field {
		case "title":
			rec.Title = value.(string)
		case "description":
			rec.Description = value.(string)
		case "attachment":
			rec.Attachment = value.(string)
		case "status":
			rec.Status = value.(models.SubmissionStatus)
		case "rejection_reason":
			rec.RejectionReason = toString(value)
		case "reviewed_by_id":
			rec.ReviewedByID = toString(value)
		case "reviewed_at":
			rec.ReviewedAt = toTime(value)
		default:
			panic("неизвестное поле работы: " + field)
		}
	}
}

func toTime(value interface{}) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}
	return nil
}

func toString(value interface{}) *string {
	switch v := value.(type) {
	case string:
		return &v
	case *string:
		return v
	}
	return nil
}

var (
	_ taskstore.Provider        = &memTaskStore{}
	_ submissionstore.Provider  = &memSubmissionStore{}
	_ taskhistorystore.Provider = &memHistoryStore{}
)
