package taskapimodels

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// AssigneeList список идентификаторов исполнителей.
// Принимает JSON массив строк, строку с JSON массивом или одиночный идентификатор.
type AssigneeList []string

func (a *AssigneeList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}
	switch data[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return errors.New("список исполнителей должен содержать только строковые идентификаторы")
		}
		result, err := normalizeAssignees(list)
		if err != nil {
			return err
		}
		*a = result
		return nil
	case '"':
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return errors.New("некорректный список исполнителей")
		}
		result, err := ParseAssignees([]string{value})
		if err != nil {
			return err
		}
		*a = result
		return nil
	}
	return errors.New("некорректный список исполнителей")
}

// ParseAssignees разбирает значения полей формы: каждое значение может быть
// идентификатором или JSON массивом идентификаторов
func ParseAssignees(values []string) (AssigneeList, error) {
	list := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, "[") {
			var items []string
			if err := json.Unmarshal([]byte(value), &items); err != nil {
				return nil, errors.New("список исполнителей должен содержать только строковые идентификаторы")
			}
			list = append(list, items...)
			continue
		}
		if strings.HasPrefix(value, "{") || strings.HasPrefix(value, "\"") {
			return nil, errors.New("некорректный список исполнителей")
		}
		list = append(list, value)
	}
	return normalizeAssignees(list)
}

func normalizeAssignees(list []string) (AssigneeList, error) {
	result := make(AssigneeList, 0, len(list))
	seen := map[string]bool{}
	for _, id := range list {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, errors.New("пустой идентификатор исполнителя")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result, nil
}

func (a AssigneeList) Validate() error {
	if len(a) == 0 {
		return errors.New("не указаны исполнители задачи")
	}
	return nil
}
