package service

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	"github.com/akademos/campus-records/internal/store"
	appErrors "github.com/akademos/campus-records/pkg/errors"
	"github.com/akademos/campus-records/pkg/export"
	"github.com/akademos/campus-records/pkg/storage"
)

// Entity file names within an export directory.
const (
	StudentsFile    = "students.csv"
	CoursesFile     = "courses.csv"
	EnrollmentsFile = "enrollments.csv"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

var (
	studentHeaders    = []string{"id", "reg_no", "full_name", "email", "enrollment_date", "active"}
	courseHeaders     = []string{"code", "title", "credits", "department", "semester", "instructor_id", "active"}
	enrollmentHeaders = []string{"student_id", "course_code", "enrolled_at", "status", "grade"}
)

// enrollmentReplayer is the slice of the enrollment engine the importer
// needs to rebuild enrollments under the live business rules.
type enrollmentReplayer interface {
	Enroll(studentID, courseCode string) (*models.Enrollment, error)
	AssignGrade(studentID, courseCode string, grade models.Grade) error
	Withdraw(studentID, courseCode string) error
}

// ExportService flattens the entity tables to delimited files and rebuilds
// them on import. It also renders printable transcripts.
type ExportService struct {
	students    *store.Store[*models.Student]
	courses     *store.Store[*models.Course]
	enrollments *store.Store[*models.Enrollment]
	engine      enrollmentReplayer
	storage     *storage.Storage
	csv         *export.CSVExporter
	csvIn       *export.CSVImporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(students *store.Store[*models.Student], courses *store.Store[*models.Course], enrollments *store.Store[*models.Enrollment], engine enrollmentReplayer, st *storage.Storage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		engine:      engine,
		storage:     st,
		csv:         export.NewCSVExporter(),
		csvIn:       export.NewCSVImporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// ExportAll writes one CSV file per entity table into the directory,
// creating it if needed and truncating existing files. Files are written
// sequentially; a failure part-way leaves the earlier files in place.
func (s *ExportService) ExportAll(dir string) error {
	if err := s.storage.EnsureDir(dir); err != nil {
		return err
	}
	if err := s.writeDataset(dir, StudentsFile, s.studentDataset()); err != nil {
		return err
	}
	if err := s.writeDataset(dir, CoursesFile, s.courseDataset()); err != nil {
		return err
	}
	return s.writeDataset(dir, EnrollmentsFile, s.enrollmentDataset())
}

// ImportAll reads whichever entity files exist in the directory and
// commits their records through the stores. Students and courses are
// upserts keyed by id/code; a malformed line there aborts the import.
// Enrollments replay through the engine so duplicate and credit-limit
// rules are re-derived; failures there are logged and skipped.
func (s *ExportService) ImportAll(dir string) error {
	if err := s.importStudents(dir); err != nil {
		return err
	}
	if err := s.importCourses(dir); err != nil {
		return err
	}
	return s.importEnrollments(dir)
}

func (s *ExportService) writeDataset(dir, name string, data export.Dataset) error {
	raw, err := s.csv.Render(data)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, fmt.Sprintf("render %s", name))
	}
	if err := s.storage.WriteFile(filepath.Join(dir, name), raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, fmt.Sprintf("write %s", name))
	}
	return nil
}

func (s *ExportService) readDataset(dir, name string) (export.Dataset, bool, error) {
	path := filepath.Join(dir, name)
	if !s.storage.FileExists(path) {
		return export.Dataset{}, false, nil
	}
	raw, err := s.storage.ReadFile(path)
	if err != nil {
		return export.Dataset{}, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, fmt.Sprintf("read %s", name))
	}
	data, err := s.csvIn.Parse(raw)
	if err != nil {
		return export.Dataset{}, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, fmt.Sprintf("parse %s", name))
	}
	return data, true, nil
}

func (s *ExportService) studentDataset() export.Dataset {
	rows := make([]map[string]string, 0, s.students.Count())
	for _, st := range s.students.FindAll() {
		rows = append(rows, map[string]string{
			"id":              st.ID,
			"reg_no":          st.RegNo,
			"full_name":       st.FullName,
			"email":           st.Email,
			"enrollment_date": st.EnrollmentDate.Format(dateLayout),
			"active":          strconv.FormatBool(st.Active),
		})
	}
	return export.Dataset{Headers: studentHeaders, Rows: rows}
}

func (s *ExportService) courseDataset() export.Dataset {
	rows := make([]map[string]string, 0, s.courses.Count())
	for _, c := range s.courses.FindAll() {
		rows = append(rows, map[string]string{
			"code":          c.Code,
			"title":         c.Title,
			"credits":       strconv.Itoa(c.Credits),
			"department":    c.Department,
			"semester":      string(c.Semester),
			"instructor_id": c.InstructorID,
			"active":        strconv.FormatBool(c.Active),
		})
	}
	return export.Dataset{Headers: courseHeaders, Rows: rows}
}

func (s *ExportService) enrollmentDataset() export.Dataset {
	rows := make([]map[string]string, 0, s.enrollments.Count())
	for _, e := range s.enrollments.FindAll() {
		grade := ""
		if e.Grade != nil {
			grade = string(*e.Grade)
		}
		rows = append(rows, map[string]string{
			"student_id":  e.StudentID,
			"course_code": e.CourseCode,
			"enrolled_at": e.EnrolledAt.Format(dateTimeLayout),
			"status":      string(e.Status),
			"grade":       grade,
		})
	}
	return export.Dataset{Headers: enrollmentHeaders, Rows: rows}
}

func (s *ExportService) importStudents(dir string) error {
	data, found, err := s.readDataset(dir, StudentsFile)
	if err != nil || !found {
		return err
	}
	for _, row := range data.Rows {
		enrolled, err := time.Parse(dateLayout, row["enrollment_date"])
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, "malformed student enrollment date")
		}
		active, err := strconv.ParseBool(row["active"])
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, "malformed student active flag")
		}
		if row["id"] == "" {
			return appErrors.Clone(appErrors.ErrValidation, "student line missing id")
		}
		student := models.NewStudent(row["id"], row["reg_no"], row["full_name"], row["email"])
		student.EnrollmentDate = enrolled
		student.Active = active
		s.students.Save(student)
	}
	return nil
}

func (s *ExportService) importCourses(dir string) error {
	data, found, err := s.readDataset(dir, CoursesFile)
	if err != nil || !found {
		return err
	}
	for _, row := range data.Rows {
		credits, err := strconv.Atoi(row["credits"])
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, "malformed course credits")
		}
		semester, err := models.ParseSemester(row["semester"])
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, "malformed course semester")
		}
		active, err := strconv.ParseBool(row["active"])
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, "malformed course active flag")
		}
		if row["code"] == "" {
			return appErrors.Clone(appErrors.ErrValidation, "course line missing code")
		}
		course := models.NewCourse(models.CourseConfig{
			Code:         row["code"],
			Title:        row["title"],
			Credits:      credits,
			Department:   row["department"],
			Semester:     semester,
			InstructorID: row["instructor_id"],
		})
		course.Active = active
		s.courses.Save(course)
	}
	return nil
}

func (s *ExportService) importEnrollments(dir string) error {
	data, found, err := s.readDataset(dir, EnrollmentsFile)
	if err != nil || !found {
		return err
	}
	for _, row := range data.Rows {
		if err := s.replayEnrollment(row); err != nil {
			s.logger.Warn("skipping enrollment line",
				zap.String("student_id", row["student_id"]),
				zap.String("course_code", row["course_code"]),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *ExportService) replayEnrollment(row map[string]string) error {
	if _, err := s.engine.Enroll(row["student_id"], row["course_code"]); err != nil {
		return err
	}
	if raw := row["grade"]; raw != "" {
		grade, err := models.ParseGrade(raw)
		if err != nil {
			return err
		}
		if err := s.engine.AssignGrade(row["student_id"], row["course_code"], grade); err != nil {
			return err
		}
	}
	if row["status"] == string(models.EnrollmentStatusWithdrawn) {
		return s.engine.Withdraw(row["student_id"], row["course_code"])
	}
	return nil
}

// BuildTranscript assembles the per-course dataset behind a student's
// transcript, ordered by course code.
func (s *ExportService) BuildTranscript(studentID string) (export.Dataset, *models.Student, error) {
	student, ok := s.students.FindByID(studentID)
	if !ok {
		return export.Dataset{}, nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	enrollments := s.enrollments.FindBy(func(e *models.Enrollment) bool {
		return e.StudentID == studentID
	})
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].CourseCode < enrollments[j].CourseCode
	})

	headers := []string{"Course", "Title", "Credits", "Semester", "Status", "Grade"}
	rows := make([]map[string]string, 0, len(enrollments))
	for _, e := range enrollments {
		row := map[string]string{
			"Course": e.CourseCode,
			"Status": string(e.Status),
			"Grade":  "",
		}
		if e.Grade != nil {
			row["Grade"] = string(*e.Grade)
		}
		if course, ok := s.courses.FindByID(e.CourseCode); ok {
			row["Title"] = course.Title
			row["Credits"] = strconv.Itoa(course.Credits)
			row["Semester"] = string(course.Semester)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}, student, nil
}

// RenderTranscriptPDF renders a student's transcript as a PDF document.
func (s *ExportService) RenderTranscriptPDF(studentID string) ([]byte, error) {
	data, student, err := s.BuildTranscript(studentID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Transcript - %s (%s)", student.FullName, student.RegNo)
	footer := fmt.Sprintf("Cumulative GPA: %.2f", student.GPA)
	raw, err := s.pdf.Render(data, title, footer)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "render transcript")
	}
	return raw, nil
}
