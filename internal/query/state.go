package query

import "strings"

// State - неизменяемое состояние запроса к списку.
// Все изменения проходят через Reduce и возвращают новое значение.
type State struct {
	Filter Filter  `json:"filter"`
	Sort   SortKey `json:"sort"`
	Page   int     `json:"page"`
}

// ActionType перечисляет действия пользователя над списком.
type ActionType string

const (
	ActionSetSearch   ActionType = "set_search"
	ActionSetCategory ActionType = "set_category"
	ActionSetLocation ActionType = "set_location"
	ActionSetSkill    ActionType = "set_skill"
	ActionSetSort     ActionType = "set_sort"
	ActionNextPage    ActionType = "next_page"
	ActionPrevPage    ActionType = "prev_page"
	ActionGoToPage    ActionType = "go_to_page"
	ActionReset       ActionType = "reset"
)

// Valid сообщает, известен ли тип действия.
func (t ActionType) Valid() bool {
	switch t {
	case ActionSetSearch, ActionSetCategory, ActionSetLocation, ActionSetSkill,
		ActionSetSort, ActionNextPage, ActionPrevPage, ActionGoToPage, ActionReset:
		return true
	}
	return false
}

// Action - одно действие пользователя.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
	Page  int        `json:"page,omitempty"`
}

// NewState возвращает начальное состояние с сортировкой по умолчанию.
func NewState(defaultSort SortKey) State {
	return State{Sort: defaultSort, Page: 1}
}

// Reduce применяет действие к состоянию. totalPages - число страниц
// для текущих фильтров; переходы за границы отклоняются, и состояние
// возвращается без изменений. Смена фильтра или сортировки
// сбрасывает страницу на первую.
func Reduce(s State, a Action, defaultSort SortKey, totalPages int) State {
	totalPages = max(totalPages, 1)

	switch a.Type {
	case ActionSetSearch:
		s.Filter.Search = a.Value
		s.Page = 1
	case ActionSetCategory:
		s.Filter.Category = a.Value
		s.Page = 1
	case ActionSetLocation:
		s.Filter.Location = a.Value
		s.Page = 1
	case ActionSetSkill:
		s.Filter.Skill = a.Value
		s.Page = 1
	case ActionSetSort:
		s.Sort = SortKey(strings.ToLower(strings.TrimSpace(a.Value)))
		s.Page = 1
	case ActionNextPage:
		if s.Page < totalPages {
			s.Page++
		}
	case ActionPrevPage:
		if s.Page > 1 {
			s.Page--
		}
	case ActionGoToPage:
		if a.Page >= 1 && a.Page <= totalPages {
			s.Page = a.Page
		}
	case ActionReset:
		return NewState(defaultSort)
	}

	return s
}
