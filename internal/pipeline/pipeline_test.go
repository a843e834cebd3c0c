package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reservepro/internal/domain"
)

const today = "2026-08-29"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"empty_becomes_today", "", today},
		{"whitespace_becomes_today", "   ", today},
		{"canonical_unchanged", "2024-03-15", "2024-03-15"},
		{"iso_timestamp_truncated", "2024-03-15T00:00:00Z", "2024-03-15"},
		{"iso_timestamp_with_offset", "2024-03-15T18:30:00+02:00", "2024-03-15"},
		{"sql_timestamp_parsed", "2024-03-15 18:30:00", "2024-03-15"},
		{"unrecognized_kept", "15/03/2024", "15/03/2024"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NormalizeDate(testCase.raw, today))
		})
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	inputs := []string{"", "2024-03-15", "2024-03-15T00:00:00Z", "2024-03-15 18:30:00", "garbage"}
	for _, raw := range inputs {
		once := NormalizeDate(raw, today)
		assert.Equal(t, once, NormalizeDate(once, today), "input %q", raw)
	}
}

func TestSortSchedule(t *testing.T) {
	list := []domain.Reservation{
		{ID: 1, Date: "2024-03-16", Time: "12:00"},
		{ID: 2, Date: "2024-03-15", Time: "20:00"},
		{ID: 3, Date: "2024-03-15", Time: "19:30"},
		{ID: 4, Date: "2024-03-15", Time: "19:30"},
	}

	SortSchedule(list)

	assert.Equal(t, []int{3, 4, 2, 1}, []int{list[0].ID, list[1].ID, list[2].ID, list[3].ID})
}

func TestFilter(t *testing.T) {
	list := []domain.Reservation{
		{ID: 1, ClientName: "Maria Petrova", ClientPhone: "+359 89 917 5548", TableNumber: "12"},
		{ID: 2, ClientName: "Georgi Ivanov", ClientPhone: "+30 694 123 4567", TableNumber: "5"},
		{ID: 3, ClientName: "Elena Dimitrova", ClientPhone: "+359 88 555 1234", TableNumber: "A1"},
	}

	tests := []struct {
		name     string
		term     string
		expected []int
	}{
		{"name_case_insensitive", "maria", []int{1}},
		{"partial_name", "ov", []int{1, 2, 3}},
		{"phone_literal", "359 89", []int{1}},
		{"table_case_insensitive", "a1", []int{3}},
		{"no_match", "zzz", []int{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			filtered := Filter(list, testCase.term)
			ids := make([]int, 0, len(filtered))
			for _, r := range filtered {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, testCase.expected, ids)
		})
	}
}

func TestFilter_BlankTermReturnsInput(t *testing.T) {
	list := []domain.Reservation{{ID: 2}, {ID: 1}}

	assert.Equal(t, list, Filter(list, ""))
	assert.Equal(t, list, Filter(list, "   "))
}

func TestNormalize_KeepsLength(t *testing.T) {
	list := []domain.Reservation{
		{ID: 1, Date: "2024-03-15T00:00:00Z"},
		{ID: 2, Date: ""},
	}

	out := Normalize(list, today)

	assert.Len(t, out, 2)
	assert.Equal(t, "2024-03-15", out[0].Date)
	assert.Equal(t, today, out[1].Date)
	// Input is untouched.
	assert.Equal(t, "2024-03-15T00:00:00Z", list[0].Date)
}
