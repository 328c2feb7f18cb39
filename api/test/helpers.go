package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/irsalhamdi/course-market/core/course"
	"github.com/irsalhamdi/course-market/core/teacher"
	"github.com/shopspring/decimal"
)

// do runs one JSON request against the API, decoding the response body into
// out when given, and returns the status code.
func (e *TestEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	r, err := http.NewRequest(method, e.URL+path, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	r.Header.Set("Content-Type", "application/json")

	w, err := e.Client().Do(r)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}

	return w.StatusCode
}

func (e *TestEnv) seedCountry(t *testing.T, name string, taxRate string) {
	t.Helper()

	const q = `
	INSERT INTO countries (name, tax_rate, active) VALUES ($1, $2, TRUE)
	ON CONFLICT (name) DO UPDATE SET tax_rate = EXCLUDED.tax_rate`

	if _, err := e.DB.Exec(q, name, taxRate); err != nil {
		t.Fatalf("seeding country %s: %v", name, err)
	}
}

func (e *TestEnv) createTeacher(t *testing.T, fullName string) teacher.Teacher {
	t.Helper()

	var tc teacher.Teacher
	status := e.do(t, http.MethodPost, "/teachers", teacher.TeacherNew{FullName: fullName}, &tc)
	if status != http.StatusCreated {
		t.Fatalf("creating teacher: status %d", status)
	}
	return tc
}

func (e *TestEnv) createCourse(t *testing.T, teacherID string, title string, priceStr string) course.Course {
	t.Helper()

	cn := course.CourseNew{
		TeacherID: teacherID,
		Title:     title,
		Price:     decimal.RequireFromString(priceStr),
	}

	var c course.Course
	status := e.do(t, http.MethodPost, "/courses", cn, &c)
	if status != http.StatusCreated {
		t.Fatalf("creating course: status %d", status)
	}
	return c
}

func requireEqualDec(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, expected %s", label, got, want)
	}
}
