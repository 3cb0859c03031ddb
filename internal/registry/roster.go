package registry

import (
	"slices"

	"github.com/stemsi/enrollment-backend/internal/model"
)

// rosterItem pairs a student with its arrival sequence so that equal
// priorities are served first-come first-served.
type rosterItem struct {
	student model.StudentInfo
	seq     uint64
}

// roster is a priority-ordered list of students. The front (index 0) is the
// student with the lowest priority value.
type roster struct {
	items []rosterItem
}

func compareItems(a, b rosterItem) int {
	if c := model.CompareStudents(a.student, b.student); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}

func (r *roster) len() int { return len(r.items) }

// insert places the student at its priority position and returns that index.
func (r *roster) insert(s model.StudentInfo, seq uint64) int {
	item := rosterItem{student: s, seq: seq}
	i, _ := slices.BinarySearchFunc(r.items, item, compareItems)
	r.items = slices.Insert(r.items, i, item)
	return i
}

// popFront removes and returns the highest-priority item.
func (r *roster) popFront() (rosterItem, bool) {
	if len(r.items) == 0 {
		return rosterItem{}, false
	}
	front := r.items[0]
	r.items[0] = rosterItem{}
	r.items = r.items[1:]
	return front, true
}

func (r *roster) front() (model.StudentInfo, bool) {
	if len(r.items) == 0 {
		return model.StudentInfo{}, false
	}
	return r.items[0].student, true
}

func (r *roster) contains(studentID string) bool {
	return slices.ContainsFunc(r.items, func(it rosterItem) bool {
		return it.student.StudentID() == studentID
	})
}

// students returns a copy of the roster in priority order.
func (r *roster) students() []model.StudentInfo {
	out := make([]model.StudentInfo, len(r.items))
	for i, it := range r.items {
		out[i] = it.student
	}
	return out
}
