package taskhandler

import (
	"context"
	"strings"
	"task-flow-backend/db"
	counterhandler "task-flow-backend/lib/counter"
	filestorage "task-flow-backend/lib/file-storage"
	taskhistorystore "task-flow-backend/lib/task/history-store"
	taskstore "task-flow-backend/lib/task/store"
	submissionstore "task-flow-backend/lib/task/submission-store"
	tasknotify "task-flow-backend/lib/task-notify"
	usersstore "task-flow-backend/lib/users/store"
	apperrors "task-flow-backend/lib/utils/app-errors"
	"task-flow-backend/models"
	taskapimodels "task-flow-backend/models/api/task"
	dbmodels "task-flow-backend/models/db"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// задачи (администратор / руководитель)
	Create(ctx context.Context, spaceID, userID string, role models.UserRole, data taskapimodels.TaskData, file *models.File) (*taskapimodels.TaskView, error)
	List(spaceID, userID string, role models.UserRole) ([]taskapimodels.TaskView, error)
	Get(spaceID, userID string, role models.UserRole, id string) (*taskapimodels.TaskView, error)
	Update(spaceID, userID string, role models.UserRole, id string, data taskapimodels.TaskPatchData) (*taskapimodels.TaskView, error)
	Delete(spaceID, userID string, role models.UserRole, id string) error
	History(spaceID, userID string, role models.UserRole, id string) ([]taskapimodels.TaskHistoryView, error)
	// задачи сотрудника
	ListMy(spaceID, userID string) ([]taskapimodels.TaskView, error)
	Start(spaceID, userID, id string) (*taskapimodels.TaskView, error)
	Submit(ctx context.Context, spaceID, userID, id string, data taskapimodels.SubmissionData, file *models.File) (*taskapimodels.SubmissionView, error)
	EditSubmission(ctx context.Context, spaceID, userID, id string, data taskapimodels.SubmissionData, file *models.File) (*taskapimodels.SubmissionView, error)
	MySubmissions(spaceID, userID, id string) ([]taskapimodels.SubmissionView, error)
	// проверка работ
	ListSubmissions(spaceID, userID string, role models.UserRole) ([]taskapimodels.SubmissionView, error)
	ListTaskSubmissions(spaceID, userID string, role models.UserRole, taskID string) ([]taskapimodels.SubmissionView, error)
	GetSubmission(spaceID, userID string, role models.UserRole, id string) (*taskapimodels.SubmissionView, error)
	Approve(spaceID, userID string, role models.UserRole, id string) (*taskapimodels.SubmissionView, error)
	Reject(spaceID, userID string, role models.UserRole, id string, data taskapimodels.RejectData) (*taskapimodels.SubmissionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		stores:      newStores(db.DB),
		counter:     counterhandler.Instance,
		usersStore:  usersstore.NewInstance(db.DB),
		fileStorage: filestorage.Instance,
		notifier:    tasknotify.Instance,
		inTransaction: func(fn func(s stores) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(newStores(tx))
			})
		},
		now: time.Now,
	}
}

type stores struct {
	task       taskstore.Provider
	submission submissionstore.Provider
	history    taskhistorystore.Provider
}

func newStores(tx *gorm.DB) stores {
	return stores{
		task:       taskstore.NewInstance(tx),
		submission: submissionstore.NewInstance(tx),
		history:    taskhistorystore.NewInstance(tx),
	}
}

type impl struct {
	stores
	counter       counterhandler.Provider
	usersStore    usersstore.Provider
	fileStorage   filestorage.Provider
	notifier      tasknotify.Provider
	inTransaction func(fn func(s stores) error) error
	now           func() time.Time
}

func (i impl) getLogger(spaceID, userID, recID string) *log.Entry {
	logger := log.
		WithField("space_id", spaceID).
		WithField("user_id", userID)
	if recID != "" {
		logger = logger.WithField("rec_id", recID)
	}
	return logger
}

func (i impl) Create(ctx context.Context, spaceID, userID string, role models.UserRole, data taskapimodels.TaskData, file *models.File) (*taskapimodels.TaskView, error) {
	if !role.CanAssign() {
		return nil, apperrors.Forbidden()
	}
	if err := data.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	assignees, err := i.checkAssignees(spaceID, data.AssignedTo)
	if err != nil {
		return nil, err
	}
	logger := i.getLogger(spaceID, userID, "")
	taskID, err := i.counter.NextTaskID(ctx)
	if err != nil {
		return nil, err
	}
	if !file.IsEmpty() {
		data.Attachment, err = i.upload(ctx, spaceID, *file)
		if err != nil {
			return nil, err
		}
	}
	rec := dbmodels.Task{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		TaskID:       taskID,
		Title:        data.Title,
		Description:  data.Description,
		Status:       models.TaskStatusCreated,
		AssignedTo:   pq.StringArray(data.AssignedTo),
		AssignedByID: userID,
		StartDate:    data.GetStartDate(),
		Deadline:     data.GetDeadline(),
		Attachment:   data.Attachment,
	}
	err = i.inTransaction(func(s stores) error {
		rec.ID, err = s.task.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания задачи")
		}
		return i.audit(s, rec, userID, "", models.TaskActionCreate, "", nil)
	})
	if err != nil {
		return nil, err
	}
	logger.
		WithField("task_id", rec.TaskID).
		Info("задача создана")
	if i.notifier != nil {
		i.notifier.TaskAssigned(rec, assignees)
	}
	return i.getView(spaceID, rec.ID)
}

func (i impl) List(spaceID, userID string, role models.UserRole) ([]taskapimodels.TaskView, error) {
	filter := taskstore.Filter{}
	switch {
	case role.IsAdmin():
	case role == models.ManagerRole:
		filter.AssignedByID = userID
	case role == models.EmployeeRole:
		filter.AssigneeID = userID
	default:
		return nil, apperrors.Forbidden()
	}
	return i.list(spaceID, filter)
}

func (i impl) ListMy(spaceID, userID string) ([]taskapimodels.TaskView, error) {
	return i.list(spaceID, taskstore.Filter{AssigneeID: userID})
}

func (i impl) Get(spaceID, userID string, role models.UserRole, id string) (*taskapimodels.TaskView, error) {
	rec, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if err = checkScope(*rec, userID, role); err != nil {
		return nil, err
	}
	return i.convert(spaceID, *rec)
}

func (i impl) Update(spaceID, userID string, role models.UserRole, id string, data taskapimodels.TaskPatchData) (*taskapimodels.TaskView, error) {
	if !role.CanAssign() {
		return nil, apperrors.Forbidden()
	}
	rec, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if err = checkScope(*rec, userID, role); err != nil {
		return nil, err
	}
	if err = data.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if data.AssignedTo != nil {
		if _, err = i.checkAssignees(spaceID, *data.AssignedTo); err != nil {
			return nil, err
		}
	}
	updMap, changes := buildPatch(*rec, data)
	if startDate, deadline := patchedDates(*rec, data); startDate != nil && deadline != nil && deadline.Before(*startDate) {
		return nil, apperrors.Validation("срок не может быть раньше даты начала")
	}
	if len(updMap) == 0 {
		return i.convert(spaceID, *rec)
	}
	err = i.inTransaction(func(s stores) error {
		err := s.task.Update(spaceID, id, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения задачи")
		}
		if status, ok := updMap["status"].(models.TaskStatus); ok {
			rec.Status = status
		}
		return i.audit(s, *rec, userID, "", models.TaskActionUpdate, "", changes)
	})
	if err != nil {
		return nil, err
	}
	return i.getView(spaceID, id)
}

func (i impl) Delete(spaceID, userID string, role models.UserRole, id string) error {
	if !role.CanAssign() {
		return apperrors.Forbidden()
	}
	rec, err := i.getTask(spaceID, id)
	if err != nil {
		return err
	}
	if err = checkScope(*rec, userID, role); err != nil {
		return err
	}
	err = i.inTransaction(func(s stores) error {
		err := s.task.Delete(spaceID, id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления задачи")
		}
		return i.audit(s, *rec, userID, "", models.TaskActionDelete, rec.TaskID, nil)
	})
	if err != nil {
		return err
	}
	i.getLogger(spaceID, userID, id).Info("задача удалена")
	return nil
}

func (i impl) History(spaceID, userID string, role models.UserRole, id string) ([]taskapimodels.TaskHistoryView, error) {
	rec, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if err = checkScope(*rec, userID, role); err != nil {
		return nil, err
	}
	list, err := i.history.List(spaceID, id)
	if err != nil {
		return nil, err
	}
	result := make([]taskapimodels.TaskHistoryView, 0, len(list))
	for _, item := range list {
		result = append(result, taskapimodels.TaskHistoryConvert(item))
	}
	return result, nil
}

func (i impl) Start(spaceID, userID, id string) (*taskapimodels.TaskView, error) {
	rec, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if !rec.IsAssignee(userID) {
		return nil, apperrors.Forbidden()
	}
	if !rec.Status.AllowStart() {
		return nil, apperrors.Conflictf("задачу в статусе \"%v\" нельзя взять в работу", rec.Status)
	}
	err = i.inTransaction(func(s stores) error {
		updMap := map[string]interface{}{
			"status":       models.TaskStatusInProgress,
			"task_started": i.now(),
		}
		ok, err := s.task.ChangeStatus(spaceID, id, models.StartableStatuses, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения статуса задачи")
		}
		if !ok {
			return apperrors.Conflict("статус задачи изменился, обновите данные")
		}
		rec.Status = models.TaskStatusInProgress
		return i.audit(s, *rec, userID, "", models.TaskActionStart, "", nil)
	})
	if err != nil {
		return nil, err
	}
	return i.getView(spaceID, id)
}

func (i impl) Submit(ctx context.Context, spaceID, userID, id string, data taskapimodels.SubmissionData, file *models.File) (*taskapimodels.SubmissionView, error) {
	task, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if !task.IsAssignee(userID) {
		return nil, apperrors.Forbidden()
	}
	if !task.Status.AllowSubmit() {
		return nil, apperrors.Conflictf("работу можно отправить только по задаче в работе, текущий статус \"%v\"", task.Status)
	}
	if err = data.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	submittedID, err := i.counter.NextSubmissionID(ctx)
	if err != nil {
		return nil, err
	}
	if !file.IsEmpty() {
		data.Attachment, err = i.upload(ctx, spaceID, *file)
		if err != nil {
			return nil, err
		}
	}
	now := i.now()
	rec := dbmodels.TaskSubmission{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		TaskRef:     id,
		EmployeeID:  userID,
		SubmittedID: submittedID,
		Title:       data.Title,
		Description: data.Description,
		Attachment:  data.Attachment,
		Status:      models.SubmissionStatusPending,
	}
	err = i.inTransaction(func(s stores) error {
		rec.ID, err = s.submission.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения работы")
		}
		updMap := map[string]interface{}{
			"status":       models.TaskStatusSubmitted,
			"submitted_at": now,
		}
		ok, err := s.task.ChangeStatus(spaceID, id, []models.TaskStatus{models.TaskStatusInProgress}, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения статуса задачи")
		}
		if !ok {
			return apperrors.Conflict("статус задачи изменился, обновите данные")
		}
		task.Status = models.TaskStatusSubmitted
		return i.audit(s, *task, userID, rec.ID, models.TaskActionSubmit, "", nil)
	})
	if err != nil {
		return nil, err
	}
	i.getLogger(spaceID, userID, id).
		WithField("submitted_id", submittedID).
		Info("работа отправлена на проверку")
	return i.getSubmissionView(spaceID, rec.ID)
}

func (i impl) EditSubmission(ctx context.Context, spaceID, userID, id string, data taskapimodels.SubmissionData, file *models.File) (*taskapimodels.SubmissionView, error) {
	task, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if !task.IsAssignee(userID) {
		return nil, apperrors.Forbidden()
	}
	if !task.Status.AllowEditSubmission() {
		return nil, apperrors.Conflictf("изменить работу можно только по задаче в работе или на проверке, текущий статус задачи \"%v\"", task.Status)
	}
	if err = data.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	latest, err := i.submission.GetLatest(spaceID, id)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, apperrors.Conflict("по задаче нет отправленной работы, сначала отправьте работу")
	}
	if latest.EmployeeID != userID {
		return nil, apperrors.Forbidden()
	}
	if !latest.Status.AllowEdit(task.Status) {
		return nil, apperrors.Conflictf("работу в статусе \"%v\" изменить нельзя, отправьте новую работу", latest.Status)
	}
	if !file.IsEmpty() {
		data.Attachment, err = i.upload(ctx, spaceID, *file)
		if err != nil {
			return nil, err
		}
	}
	if data.Attachment == "" {
		data.Attachment = latest.Attachment
	}
	err = i.inTransaction(func(s stores) error {
		updMap := map[string]interface{}{
			"title":       data.Title,
			"description": data.Description,
			"attachment":  data.Attachment,
		}
		if latest.Status != models.SubmissionStatusPending {
			// отклонённая работа снова уходит на проверку
			updMap["status"] = models.SubmissionStatusPending
			updMap["rejection_reason"] = nil
			updMap["reviewed_by_id"] = nil
			updMap["reviewed_at"] = nil
		}
		ok, err := s.submission.ChangeStatus(spaceID, latest.ID, latest.Status, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения работы")
		}
		if !ok {
			return apperrors.Conflict("работа уже проверена")
		}
		taskUpd := map[string]interface{}{
			"status":       models.TaskStatusSubmitted,
			"submitted_at": i.now(),
		}
		ok, err = s.task.ChangeStatus(spaceID, id, []models.TaskStatus{task.Status}, taskUpd)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения задачи")
		}
		if !ok {
			return apperrors.Conflict("статус задачи изменился, обновите данные")
		}
		task.Status = models.TaskStatusSubmitted
		return i.audit(s, *task, userID, latest.ID, models.TaskActionEditSubmission, "", nil)
	})
	if err != nil {
		return nil, err
	}
	return i.getSubmissionView(spaceID, latest.ID)
}

func (i impl) MySubmissions(spaceID, userID, id string) ([]taskapimodels.SubmissionView, error) {
	task, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	if !task.IsAssignee(userID) {
		return nil, apperrors.Forbidden()
	}
	return i.listSubmissions(spaceID, submissionstore.Filter{TaskRef: id, EmployeeID: userID})
}

func (i impl) list(spaceID string, filter taskstore.Filter) ([]taskapimodels.TaskView, error) {
	list, err := i.task.List(spaceID, filter)
	if err != nil {
		return nil, err
	}
	users, err := i.usersMap(spaceID, list...)
	if err != nil {
		return nil, err
	}
	now := i.now()
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.TaskConvert(rec, users, now))
	}
	return result, nil
}

func (i impl) getTask(spaceID, id string) (*dbmodels.Task, error) {
	rec, err := i.task.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("задача не найдена")
	}
	return rec, nil
}

func (i impl) getView(spaceID, id string) (*taskapimodels.TaskView, error) {
	rec, err := i.getTask(spaceID, id)
	if err != nil {
		return nil, err
	}
	return i.convert(spaceID, *rec)
}

func (i impl) convert(spaceID string, rec dbmodels.Task) (*taskapimodels.TaskView, error) {
	users, err := i.usersMap(spaceID, rec)
	if err != nil {
		return nil, err
	}
	view := taskapimodels.TaskConvert(rec, users, i.now())
	return &view, nil
}

func (i impl) usersMap(spaceID string, list ...dbmodels.Task) (map[string]dbmodels.User, error) {
	ids := []string{}
	seen := map[string]bool{}
	for _, rec := range list {
		for _, id := range rec.AssignedTo {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	users, err := i.usersStore.GetByIDs(spaceID, ids)
	if err != nil {
		return nil, err
	}
	result := make(map[string]dbmodels.User, len(users))
	for _, user := range users {
		result[user.ID] = user
	}
	return result, nil
}

// checkAssignees все исполнители должны быть сотрудниками организации
func (i impl) checkAssignees(spaceID string, assignees taskapimodels.AssigneeList) ([]dbmodels.User, error) {
	users, err := i.usersStore.GetByIDs(spaceID, assignees)
	if err != nil {
		return nil, err
	}
	found := map[string]dbmodels.User{}
	for _, user := range users {
		found[user.ID] = user
	}
	result := make([]dbmodels.User, 0, len(assignees))
	for _, id := range assignees {
		user, ok := found[id]
		if !ok {
			return nil, apperrors.Validationf("сотрудник %v не найден в справочнике сотрудников", id)
		}
		result = append(result, user)
	}
	return result, nil
}

func (i impl) upload(ctx context.Context, spaceID string, file models.File) (string, error) {
	if i.fileStorage == nil {
		return "", errors.New("хранилище файлов не настроено")
	}
	return i.fileStorage.UploadAttachment(ctx, spaceID, file)
}

func (i impl) audit(s stores, task dbmodels.Task, userID, submissionRef string, action models.TaskAction, comment string, changes []dbmodels.FieldChanges) error {
	rec := dbmodels.TaskHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: task.SpaceID,
		},
		TaskRef:       task.ID,
		SubmissionRef: submissionRef,
		UserID:        userID,
		Action:        action,
		Status:        task.Status,
		Comment:       comment,
		Changes: dbmodels.EntityChanges{
			Description: action.ToHuman(),
			Data:        changes,
		},
	}
	_, err := s.history.Create(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка добавления истории по задаче")
	}
	return nil
}

// checkScope администратор видит все задачи организации, руководитель только поставленные им,
// сотрудник только те, где он исполнитель
func checkScope(task dbmodels.Task, userID string, role models.UserRole) error {
	switch role {
	case models.AdminRole:
		return nil
	case models.ManagerRole:
		if task.AssignedByID == userID {
			return nil
		}
	case models.EmployeeRole:
		if task.IsAssignee(userID) {
			return nil
		}
	}
	return apperrors.Forbidden()
}

func buildPatch(rec dbmodels.Task, data taskapimodels.TaskPatchData) (map[string]interface{}, []dbmodels.FieldChanges) {
	updMap := map[string]interface{}{}
	changes := []dbmodels.FieldChanges{}
	set := func(field string, oldValue, newValue any) {
		updMap[field] = newValue
		changes = append(changes, dbmodels.FieldChanges{Field: field, OldValue: oldValue, NewValue: newValue})
	}
	if data.Title != nil && *data.Title != rec.Title {
		set("title", rec.Title, *data.Title)
	}
	if data.Description != nil && *data.Description != rec.Description {
		set("description", rec.Description, *data.Description)
	}
	if data.Status != nil && *data.Status != rec.Status {
		set("status", rec.Status, *data.Status)
	}
	if data.AssignedTo != nil {
		set("assigned_to", []string(rec.AssignedTo), pq.StringArray(*data.AssignedTo))
	}
	if data.StartDate != nil {
		startDate, _ := taskapimodels.ParseDate(*data.StartDate)
		set("start_date", rec.StartDate, startDate)
	}
	if data.Deadline != nil {
		deadline, _ := taskapimodels.ParseDate(*data.Deadline)
		set("deadline", rec.Deadline, deadline)
	}
	if data.Attachment != nil && *data.Attachment != rec.Attachment {
		set("attachment", rec.Attachment, *data.Attachment)
	}
	if data.RejectionReason != nil {
		// пустая причина очищает поле
		if reason := strings.TrimSpace(*data.RejectionReason); reason != "" {
			set("rejection_reason", rec.RejectionReason, reason)
		} else if rec.RejectionReason != nil {
			set("rejection_reason", rec.RejectionReason, nil)
		}
	}
	if data.Marks != nil && *data.Marks != rec.Marks {
		set("marks", rec.Marks, *data.Marks)
	}
	return updMap, changes
}

func patchedDates(rec dbmodels.Task, data taskapimodels.TaskPatchData) (startDate, deadline *time.Time) {
	startDate = rec.StartDate
	deadline = rec.Deadline
	if data.StartDate != nil {
		startDate, _ = taskapimodels.ParseDate(*data.StartDate)
	}
	if data.Deadline != nil {
		deadline, _ = taskapimodels.ParseDate(*data.Deadline)
	}
	return startDate, deadline
}
