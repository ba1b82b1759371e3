package models

import (
	"slices"

	"github.com/pkg/errors"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "Created"
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusSubmitted  TaskStatus = "Submitted"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusOverdue    TaskStatus = "Overdue" // не записывается, просрочка вычисляется при чтении
	TaskStatusRejected   TaskStatus = "Rejected"
)

var taskStatuses = []TaskStatus{
	TaskStatusCreated,
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusSubmitted,
	TaskStatusCompleted,
	TaskStatusOverdue,
	TaskStatusRejected,
}

// статусы, которые можно проставить напрямую правкой задачи
var patchableStatuses = []TaskStatus{
	TaskStatusCreated,
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusRejected,
}

// StartableStatuses из этих статусов сотрудник может взять задачу в работу
var StartableStatuses = []TaskStatus{
	TaskStatusCreated,
	TaskStatusPending,
	TaskStatusRejected,
	TaskStatusOverdue,
}

func (s TaskStatus) Validate() error {
	if !slices.Contains(taskStatuses, s) {
		return errors.Errorf("неизвестный статус задачи: %v", s)
	}
	return nil
}

func (s TaskStatus) IsAllowPatch() bool {
	return slices.Contains(patchableStatuses, s)
}

func (s TaskStatus) AllowStart() bool {
	return slices.Contains(StartableStatuses, s)
}

func (s TaskStatus) AllowSubmit() bool {
	return s == TaskStatusInProgress
}

func (s TaskStatus) AllowEditSubmission() bool {
	return s == TaskStatusInProgress || s == TaskStatusSubmitted
}

func (s TaskStatus) AllowReview() bool {
	return s == TaskStatusSubmitted
}

// IsDelivered статусы, в которых просрочка считается по дате сдачи
func (s TaskStatus) IsDelivered() bool {
	return s == TaskStatusCompleted || s == TaskStatusSubmitted
}

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "Pending"
	SubmissionStatusApproved SubmissionStatus = "Approved"
	SubmissionStatusRejected SubmissionStatus = "Rejected"
)

// AllowEdit до проверки работу можно менять всегда, отклонённую только после повторного взятия задачи в работу
func (s SubmissionStatus) AllowEdit(task TaskStatus) bool {
	switch task {
	case TaskStatusSubmitted:
		return s == SubmissionStatusPending
	case TaskStatusInProgress:
		return s == SubmissionStatusPending || s == SubmissionStatusRejected
	}
	return false
}

type TaskAction string

const (
	TaskActionCreate         TaskAction = "CREATE"
	TaskActionUpdate         TaskAction = "UPDATE"
	TaskActionDelete         TaskAction = "DELETE"
	TaskActionStart          TaskAction = "START"
	TaskActionSubmit         TaskAction = "SUBMIT"
	TaskActionEditSubmission TaskAction = "EDIT_SUBMISSION"
	TaskActionApprove        TaskAction = "APPROVE"
	TaskActionReject         TaskAction = "REJECT"
)

var taskActionHumanName = map[TaskAction]string{
	TaskActionCreate:         "Задача создана",
	TaskActionUpdate:         "Задача изменена",
	TaskActionDelete:         "Задача удалена",
	TaskActionStart:          "Задача взята в работу",
	TaskActionSubmit:         "Работа отправлена на проверку",
	TaskActionEditSubmission: "Отправленная работа изменена",
	TaskActionApprove:        "Работа принята",
	TaskActionReject:         "Работа отклонена",
}

func (a TaskAction) ToHuman() string {
	if human, exist := taskActionHumanName[a]; exist {
		return human
	}
	return string(a)
}

const (
	TaskIDCounter       = "taskId"
	SubmissionIDCounter = "submissionId"
	TaskIDPrefix        = "TSK-"
	SubmissionIDPrefix  = "SUB-"
)
