package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

func setupTestImporterService(t *testing.T) (ImporterService, *repository.Repository, *mockCohortRepo, *mockCourseRepo, *mockFacultyRepo, *mockAssignmentRepo) {
	t.Helper()
	repo, cohortRepo, courseRepo, facultyRepo, assignmentRepo, _ := newMockRepository()
	svc := NewImporterService(repo, zap.NewNop())
	return svc, repo, cohortRepo, courseRepo, facultyRepo, assignmentRepo
}

// rosterRow 构造一行测试花名册，学期固定为 Spring 2020
func rosterRow(cohort, first, last, courseID, title, hours, effort, start, end string) AssignmentRow {
	return AssignmentRow{
		Semester:    "Spring 2020",
		Cohort:      cohort,
		FirstName:   first,
		LastName:    last,
		CourseID:    courseID,
		CourseTitle: title,
		Hours:       hours,
		Effort:      effort,
		StartDate:   start,
		EndDate:     end,
	}
}

// testRoster 一个完整的梯队块：边界课程两门加一行顾问任务
func testRoster() []AssignmentRow {
	return []AssignmentRow{
		rosterRow("23", "Ada", "Lovelace", "XBUS-500-01", "Foundations of Data Analysis I", "6", "100", "2020-01-11", "2020-01-11"),
		rosterRow("23", "Grace", "Hopper", "XBUS-504-01", "Applied Data Science", "12", "100", "2020-05-02", "2020-05-09"),
		rosterRow("23", "Alan", "Turing", "--", "Capstone Advisor", "10", "50", "", ""),
	}
}

// ── 导入语义测试 ──

func TestImporter_CreatesCohort(t *testing.T) {
	svc, _, cohortRepo, _, _, _ := setupTestImporterService(t)

	_, err := svc.ImportAssignments(context.Background(), testRoster())
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	cohort, err := cohortRepo.GetByNumber(context.Background(), 23)
	if err != nil {
		t.Fatalf("期望创建梯队23: %v", err)
	}
	if cohort.Semester != model.SemesterSpring {
		t.Errorf("期望学期=SP，实际=%s", cohort.Semester)
	}
	// 开学取 Foundations 行的开课日期，结业取 Applied 行的结课日期
	if cohort.StartDate == nil || cohort.StartDate.Format(dateLayout) != "2020-01-11" {
		t.Errorf("期望开学日期=2020-01-11，实际=%v", cohort.StartDate)
	}
	if cohort.EndDate == nil || cohort.EndDate.Format(dateLayout) != "2020-05-09" {
		t.Errorf("期望结业日期=2020-05-09，实际=%v", cohort.EndDate)
	}
}

func TestImporter_CreatesCoursesAndAssignments(t *testing.T) {
	svc, _, _, courseRepo, facultyRepo, assignmentRepo := setupTestImporterService(t)

	records, err := svc.ImportAssignments(context.Background(), testRoster())
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}
	for _, r := range records {
		if r.Err != nil {
			t.Fatalf("不应有行级错误: %v", r.Err)
		}
	}

	if len(courseRepo.courses) != 2 {
		t.Fatalf("期望创建2门课程，实际=%d", len(courseRepo.courses))
	}
	var foundations *model.Course
	for _, c := range courseRepo.courses {
		if c.CourseID == "XBUS-500" {
			foundations = c
		}
	}
	if foundations == nil {
		t.Fatal("期望课程编号拆出 XBUS-500")
	}
	if foundations.Section != 1 {
		t.Errorf("期望班次=1，实际=%d", foundations.Section)
	}
	if foundations.Hours != 6 {
		t.Errorf("期望学时=6，实际=%d", foundations.Hours)
	}

	if len(facultyRepo.faculty) != 3 {
		t.Errorf("期望创建3名教员，实际=%d", len(facultyRepo.faculty))
	}

	assignments, _ := assignmentRepo.List(context.Background(), repository.AssignmentFilter{})
	if len(assignments) != 3 {
		t.Fatalf("期望创建3条任务，实际=%d", len(assignments))
	}
	roles := map[string]int{}
	for _, a := range assignments {
		roles[a.Role]++
	}
	if roles[model.RoleInstructor] != 2 || roles[model.RoleAdvisor] != 1 {
		t.Errorf("期望2条任课+1条毕设指导，实际=%v", roles)
	}
}

func TestImporter_AdvisoryDefaultsFromCohort(t *testing.T) {
	svc, _, _, _, _, assignmentRepo := setupTestImporterService(t)

	if _, err := svc.ImportAssignments(context.Background(), testRoster()); err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	advisories, _ := assignmentRepo.List(context.Background(), repository.AssignmentFilter{Role: model.RoleAdvisor})
	if len(advisories) != 1 {
		t.Fatalf("期望1条毕设指导任务，实际=%d", len(advisories))
	}
	a := advisories[0]
	// 顾问任务没有课程，起止日期按梯队补全
	if a.StartDate == nil || a.StartDate.Format(dateLayout) != "2020-01-11" {
		t.Errorf("期望起始日期按梯队补全为2020-01-11，实际=%v", a.StartDate)
	}
	if a.EndDate == nil || a.EndDate.Format(dateLayout) != "2020-05-09" {
		t.Errorf("期望结束日期按梯队补全为2020-05-09，实际=%v", a.EndDate)
	}
	if a.Hours == nil || *a.Hours != 10 {
		t.Errorf("期望学时=10，实际=%v", a.Hours)
	}
	if a.Effort == nil || *a.Effort != 50 {
		t.Errorf("期望责任占比=50，实际=%v", a.Effort)
	}
}

func TestImporter_Idempotent(t *testing.T) {
	svc, _, _, _, _, _ := setupTestImporterService(t)

	first, err := svc.ImportAssignments(context.Background(), testRoster())
	if err != nil {
		t.Fatalf("首次导入应成功: %v", err)
	}
	second, err := svc.ImportAssignments(context.Background(), testRoster())
	if err != nil {
		t.Fatalf("重复导入应成功: %v", err)
	}

	firstReport := BuildImportReport(first)
	if firstReport.TotalCreated() == 0 {
		t.Error("首次导入应有新建记录")
	}
	secondReport := BuildImportReport(second)
	if secondReport.TotalCreated() != 0 {
		t.Errorf("重复导入不应新建记录，实际=%v", secondReport.Created)
	}
	if secondReport.TotalFetched() != firstReport.TotalCreated() {
		t.Errorf("重复导入应全部命中已有记录：期望%d，实际=%d",
			firstReport.TotalCreated(), secondReport.TotalFetched())
	}
}

func TestImporter_SumsHoursAcrossRows(t *testing.T) {
	svc, _, _, courseRepo, _, _ := setupTestImporterService(t)

	rows := []AssignmentRow{
		rosterRow("23", "Ada", "Lovelace", "XBUS-500-01", "Foundations of Data Analysis I", "6", "", "2020-01-11", "2020-01-11"),
		rosterRow("23", "Grace", "Hopper", "XBUS-500-01", "Foundations of Data Analysis I", "6", "", "2020-01-18", "2020-01-18"),
		rosterRow("23", "Grace", "Hopper", "XBUS-504-01", "Applied Data Science", "12", "", "2020-05-02", "2020-05-09"),
	}
	if _, err := svc.ImportAssignments(context.Background(), rows); err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var foundations *model.Course
	for _, c := range courseRepo.courses {
		if c.CourseID == "XBUS-500" {
			foundations = c
		}
	}
	if foundations == nil {
		t.Fatal("期望创建 XBUS-500")
	}
	if foundations.Hours != 12 {
		t.Errorf("期望多行学时累加=12，实际=%d", foundations.Hours)
	}
	// 起止日期取行内最早与最晚
	if foundations.StartDate.Format(dateLayout) != "2020-01-11" {
		t.Errorf("期望开课=2020-01-11，实际=%v", foundations.StartDate)
	}
	if foundations.EndDate.Format(dateLayout) != "2020-01-18" {
		t.Errorf("期望结课=2020-01-18，实际=%v", foundations.EndDate)
	}
}

// ── 行级错误测试 ──

func TestImporter_UnknownRoleContinues(t *testing.T) {
	svc, _, _, _, _, assignmentRepo := setupTestImporterService(t)

	rows := append(testRoster(),
		rosterRow("23", "Edsger", "Dijkstra", "--", "Mentor", "", "", "", ""))

	records, err := svc.ImportAssignments(context.Background(), rows)
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var roleErrs int
	for _, r := range records {
		if errors.Is(r.Err, ErrUnknownRole) {
			roleErrs++
		}
	}
	if roleErrs != 1 {
		t.Errorf("期望1条无法识别角色的错误，实际=%d", roleErrs)
	}

	// 其余行照常导入
	assignments, _ := assignmentRepo.List(context.Background(), repository.AssignmentFilter{})
	if len(assignments) != 3 {
		t.Errorf("期望其余3条任务照常导入，实际=%d", len(assignments))
	}
}

func TestImporter_MissingFacultyName(t *testing.T) {
	svc, _, _, _, _, _ := setupTestImporterService(t)

	rows := append(testRoster(),
		rosterRow("23", "", "Dijkstra", "--", "Capstone Advisor", "", "", "", ""))

	records, err := svc.ImportAssignments(context.Background(), rows)
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var nameErrs int
	for _, r := range records {
		if errors.Is(r.Err, ErrMissingFacultyName) {
			nameErrs++
		}
	}
	if nameErrs != 1 {
		t.Errorf("期望1条缺姓名错误，实际=%d", nameErrs)
	}
}

func TestImporter_DashFacultyNameIsMissing(t *testing.T) {
	svc, _, _, _, facultyRepo, _ := setupTestImporterService(t)

	// 花名册用 "--" 占位的姓名不应创建教员
	rows := append(testRoster(),
		rosterRow("23", "--", "--", "--", "Capstone Advisor", "", "", "", ""))

	records, err := svc.ImportAssignments(context.Background(), rows)
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var nameErrs int
	for _, r := range records {
		if errors.Is(r.Err, ErrMissingFacultyName) {
			nameErrs++
		}
	}
	if nameErrs != 1 {
		t.Errorf("期望1条缺姓名错误，实际=%d", nameErrs)
	}
	for _, f := range facultyRepo.faculty {
		if (f.FirstName != nil && *f.FirstName == "--") || (f.LastName != nil && *f.LastName == "--") {
			t.Errorf("不应创建占位姓名教员: %v %v", f.FirstName, f.LastName)
		}
	}
}

func TestImporter_BlankHoursUsesDefault(t *testing.T) {
	svc, _, _, courseRepo, _, _ := setupTestImporterService(t)

	rows := []AssignmentRow{
		rosterRow("23", "Ada", "Lovelace", "XBUS-500-01", "Foundations of Data Analysis I", "", "", "2020-01-11", "2020-01-11"),
		rosterRow("23", "Grace", "Hopper", "XBUS-504-01", "Applied Data Science", "12", "", "2020-05-02", "2020-05-09"),
	}
	if _, err := svc.ImportAssignments(context.Background(), rows); err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var foundations *model.Course
	for _, c := range courseRepo.courses {
		if c.CourseID == "XBUS-500" {
			foundations = c
		}
	}
	if foundations == nil {
		t.Fatal("期望创建 XBUS-500")
	}
	if foundations.Hours != model.DefaultCourseHours {
		t.Errorf("期望学时取默认值%d，实际=%d", model.DefaultCourseHours, foundations.Hours)
	}

	// 再次导入应命中同一条课程记录
	records, err := svc.ImportAssignments(context.Background(), rows)
	if err != nil {
		t.Fatalf("重复导入应成功: %v", err)
	}
	for _, r := range records {
		if r.Kind == "Course" && r.Created {
			t.Errorf("重复导入不应新建课程: %s", r.Display)
		}
	}
}

func TestImporter_InconsistentCourseTitle(t *testing.T) {
	svc, _, _, courseRepo, _, _ := setupTestImporterService(t)

	rows := []AssignmentRow{
		rosterRow("23", "Ada", "Lovelace", "XBUS-500-01", "Foundations of Data Analysis I", "6", "", "2020-01-11", "2020-01-11"),
		rosterRow("23", "Grace", "Hopper", "XBUS-500-01", "Foundations of Data Analysis II", "6", "", "2020-01-18", "2020-01-18"),
		rosterRow("23", "Grace", "Hopper", "XBUS-504-01", "Applied Data Science", "12", "", "2020-05-02", "2020-05-09"),
	}
	records, err := svc.ImportAssignments(context.Background(), rows)
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var titleErrs int
	for _, r := range records {
		if errors.Is(r.Err, ErrInconsistentCourseData) {
			titleErrs++
		}
	}
	if titleErrs != 1 {
		t.Errorf("期望1条课程数据不一致错误，实际=%d", titleErrs)
	}
	// 出错的课程块整体跳过，另一门课照常导入
	if len(courseRepo.courses) != 1 {
		t.Errorf("期望只创建1门课程，实际=%d", len(courseRepo.courses))
	}
}

func TestImporter_MissingBoundaryCourse(t *testing.T) {
	svc, _, cohortRepo, _, _, _ := setupTestImporterService(t)

	// 没有 Foundations 行，梯队开学日期无从确定，整块跳过
	rows := []AssignmentRow{
		rosterRow("23", "Grace", "Hopper", "XBUS-504-01", "Applied Data Science", "12", "", "2020-05-02", "2020-05-09"),
	}
	records, err := svc.ImportAssignments(context.Background(), rows)
	if err != nil {
		t.Fatalf("ImportAssignments 应成功: %v", err)
	}

	var cohortErrs int
	for _, r := range records {
		if errors.Is(r.Err, ErrBadCohortRows) {
			cohortErrs++
		}
	}
	if cohortErrs != 1 {
		t.Errorf("期望1条梯队行错误，实际=%d", cohortErrs)
	}
	if _, err := cohortRepo.GetByNumber(context.Background(), 23); err == nil {
		t.Error("梯队不应被创建")
	}
}

// ── CSV 读取测试 ──

func TestReadAssignments(t *testing.T) {
	csvText := `Semester,Cohort,Last Name,First Name,Course ID,Course Title,Effort (%),Hours,Start Date,End Date
Spring 2020,23, Lovelace , Ada ,XBUS-500-01,Foundations of Data Analysis I,100,6,2020-01-11,2020-01-11
Spring 2020,23,Turing,Alan,--,Capstone Advisor,50,10,,
`
	rows, err := ReadAssignments(strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("ReadAssignments 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望读出2行，实际=%d", len(rows))
	}
	// 字段应去掉首尾空白
	if rows[0].LastName != "Lovelace" || rows[0].FirstName != "Ada" {
		t.Errorf("期望姓名裁剪空白，实际=%q %q", rows[0].FirstName, rows[0].LastName)
	}
	if rows[1].CourseID != "--" {
		t.Errorf("期望CourseID=--，实际=%q", rows[1].CourseID)
	}
}

func TestReadAssignments_MissingColumn(t *testing.T) {
	csvText := "Semester,Cohort,Last Name\nSpring 2020,23,Lovelace\n"
	_, err := ReadAssignments(strings.NewReader(csvText))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("期望 ErrMissingColumn，实际: %v", err)
	}
}

func TestImportCSV_Report(t *testing.T) {
	svc, _, _, _, _, _ := setupTestImporterService(t)

	csvText := `Semester,Cohort,Last Name,First Name,Course ID,Course Title,Effort (%),Hours,Start Date,End Date
Spring 2020,23,Lovelace,Ada,XBUS-500-01,Foundations of Data Analysis I,100,6,2020-01-11,2020-01-11
Spring 2020,23,Hopper,Grace,XBUS-504-01,Applied Data Science,100,12,2020-05-02,2020-05-09
`
	report, err := svc.ImportCSV(context.Background(), strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("ImportCSV 应成功: %v", err)
	}
	if report.Created["Cohort"] != 1 {
		t.Errorf("期望新建1个梯队，实际=%v", report.Created)
	}
	if report.Created["Course"] != 2 {
		t.Errorf("期望新建2门课程，实际=%v", report.Created)
	}
	if report.Created["Faculty"] != 2 || report.Created["Assignment"] != 2 {
		t.Errorf("期望新建2名教员与2条任务，实际=%v", report.Created)
	}
	if len(report.Errors) != 0 {
		t.Errorf("不应有行级错误: %v", report.Errors)
	}
}
