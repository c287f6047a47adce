package bootstrap

import (
	"fmt"
	"time"

	"anoa.com/magangportal/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Department{},
		&entity.Posting{},
		&entity.Applicant{},
		&entity.Application{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: entity.RoleAdmin, Description: "Administrator portal magang"},
		{Name: entity.RoleReviewer, Description: "Peninjau pendaftaran"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB, email, password string) error {
	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		zap.L().Info("admin user already exists, skipping seed", zap.String("email", email))
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     "admin",
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: string(hashedPasswordBytes),
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	zap.L().Info("admin user seeded", zap.String("email", email))
	return nil
}

type samplePosting struct {
	title       string
	description string
	department  int
	openInDays  int
}

type sampleApplicant struct {
	posting    int
	nationalID string
	name       string
	gender     string
	dob        string
	address    string
	phone      string
	university string
	major      string
	gpa        float64
	status     entity.ApplicationStatus
}

var sampleDepartments = []string{
	"Accounting",
	"Business Development",
	"Engineering",
	"Human Resources",
	"Legal",
	"Marketing",
	"Product Management",
	"Sales",
	"Training",
}

var samplePostings = []samplePosting{
	{"Finance Administration Intern", "Membantu proses pembukuan, rekapitulasi data keuangan harian, dan pengarsipan dokumen keuangan perusahaan.", 0, 15},
	{"Tax Compliance Intern", "Mendukung tim dalam mempersiapkan laporan pajak bulanan dan tahunan serta dokumentasi compliance.", 0, 30},
	{"Business Analyst Intern", "Melakukan riset pasar, analisis kompetitor, dan menyusun business proposal untuk pengembangan bisnis baru.", 1, 10},
	{"Partnership Development Intern", "Membantu identifikasi calon mitra strategis dan mempersiapkan presentation deck untuk pitching.", 1, 20},
	{"Software Engineering Intern", "Pengembangan fitur aplikasi web, code review, dan testing automation.", 2, 7},
	{"DevOps Intern", "Membantu deployment aplikasi, monitoring server, dan implementasi CI/CD pipeline.", 2, 14},
	{"Quality Assurance Intern", "Melakukan testing manual dan automated testing untuk memastikan kualitas software sebelum release.", 2, 5},
	{"HR Recruitment Intern", "Membantu proses screening CV, penjadwalan interview, dan administrasi rekrutmen karyawan baru.", 3, 12},
	{"HR Learning & Development Intern", "Mendukung pelaksanaan program training karyawan dan mempersiapkan materi pelatihan internal.", 3, 25},
	{"Legal Research Intern", "Melakukan riset hukum, review kontrak, dan membantu penyusunan legal opinion untuk keperluan bisnis.", 4, 18},
	{"Corporate Legal Intern", "Membantu proses perizinan perusahaan, dokumentasi legal, dan monitoring compliance regulasi.", 4, 28},
	{"Digital Marketing Intern", "Membuat konten untuk social media, mengelola campaign iklan digital, dan analisis engagement metrics.", 5, 8},
	{"Content Marketing Intern", "Menulis artikel blog, membuat video tutorial, dan mengoptimasi SEO untuk meningkatkan brand awareness.", 5, 6},
	{"Brand Marketing Intern", "Membantu pelaksanaan event marketing, merchandise design, dan brand campaign activation.", 5, 22},
	{"Product Manager Intern", "Melakukan user research, membuat product roadmap, dan koordinasi dengan tim engineering untuk development.", 6, 16},
	{"Product Analyst Intern", "Analisis data pengguna, A/B testing, dan membuat dashboard metrics untuk product performance.", 6, 11},
	{"Sales Development Intern", "Melakukan prospecting calon klien, cold calling, dan mempersiapkan sales presentation.", 7, 9},
	{"Account Management Intern", "Membantu maintain relationship dengan existing clients dan follow up sales pipeline.", 7, 19},
	{"Corporate Training Intern", "Membantu persiapan dan pelaksanaan program pelatihan internal karyawan serta evaluasi training.", 8, 13},
	{"E-Learning Content Developer", "Membuat konten e-learning interaktif, video tutorial, dan modul pelatihan digital.", 8, 26},
}

var sampleApplicants = []sampleApplicant{
	{0, "3273010101950001", "Budi Santoso", entity.GenderMale, "1995-01-01", "Jl. Sudirman No. 123, Jakarta Selatan", "081234567890", "Universitas Indonesia", "Akuntansi", 3.45, entity.StatusApproved},
	{4, "3174020202960002", "Siti Nurhaliza", entity.GenderFemale, "1996-02-02", "Jl. Gatot Subroto No. 45, Jakarta Pusat", "081234567891", "Institut Teknologi Bandung", "Teknik Informatika", 3.78, entity.StatusApproved},
	{11, "3201030303970003", "Ahmad Fauzi", entity.GenderMale, "1997-03-03", "Jl. Ahmad Yani No. 78, Bogor", "081234567892", "Universitas Gadjah Mada", "Ilmu Komunikasi", 3.56, entity.StatusPending},
	{7, "3275040404980004", "Dewi Lestari", entity.GenderFemale, "1998-04-04", "Jl. Diponegoro No. 56, Bandung", "081234567893", "Universitas Padjadjaran", "Psikologi", 3.62, entity.StatusApproved},
	{2, "3374050505990005", "Rizky Pratama", entity.GenderMale, "1999-05-05", "Jl. Pemuda No. 89, Semarang", "081234567894", "Universitas Diponegoro", "Manajemen", 3.71, entity.StatusPending},
	{14, "3578060600000006", "Maya Angelina", entity.GenderFemale, "2000-06-06", "Jl. Basuki Rahmat No. 34, Surabaya", "081234567895", "Institut Teknologi Sepuluh Nopember", "Sistem Informasi", 3.84, entity.StatusApproved},
	{16, "3471070701010007", "Andi Setiawan", entity.GenderMale, "2001-07-07", "Jl. Pahlawan No. 67, Yogyakarta", "081234567896", "Universitas Gadjah Mada", "Marketing", 3.50, entity.StatusRejected},
	{9, "3172080802020008", "Putri Wulandari", entity.GenderFemale, "2002-08-08", "Jl. Rasuna Said No. 12, Jakarta Selatan", "081234567897", "Universitas Indonesia", "Hukum", 3.68, entity.StatusPending},
	{5, "3273090903030009", "Dimas Prasetyo", entity.GenderMale, "2003-09-09", "Jl. Asia Afrika No. 90, Bandung", "081234567898", "Institut Teknologi Bandung", "Teknik Komputer", 3.73, entity.StatusApproved},
	{18, "3201100104040010", "Rina Marlina", entity.GenderFemale, "2004-10-10", "Jl. Merdeka No. 23, Bogor", "081234567899", "Universitas Negeri Jakarta", "Pendidikan", 3.59, entity.StatusPending},
	{12, "3174111105050011", "Fajar Ramadhan", entity.GenderMale, "2001-11-11", "Jl. Thamrin No. 45, Jakarta Pusat", "081234567800", "Universitas Multimedia Nusantara", "Desain Komunikasi Visual", 3.65, entity.StatusApproved},
	{1, "3275121206060012", "Indah Permatasari", entity.GenderFemale, "2000-12-12", "Jl. Cihampelas No. 78, Bandung", "081234567801", "Universitas Padjadjaran", "Perpajakan", 3.81, entity.StatusApproved},
	{6, "3374010107070013", "Hendra Wijaya", entity.GenderMale, "1999-01-13", "Jl. Pandanaran No. 56, Semarang", "081234567802", "Universitas Diponegoro", "Sistem Informasi", 3.55, entity.StatusRejected},
	{13, "3578020208080014", "Citra Dewi", entity.GenderFemale, "1998-02-14", "Jl. Darmo No. 89, Surabaya", "081234567803", "Universitas Airlangga", "Marketing Communication", 3.70, entity.StatusPending},
	{15, "3471030309090015", "Bayu Aditya", entity.GenderMale, "1997-03-15", "Jl. Malioboro No. 12, Yogyakarta", "081234567804", "Universitas Gadjah Mada", "Statistika", 3.76, entity.StatusApproved},
}

// postingLength is how long each sample posting stays open.
const postingLength = 90 * 24 * time.Hour

// SeedSampleData fills an empty database with demo departments, postings,
// applicants and applications. It does nothing when any department exists.
func SeedSampleData(db *gorm.DB, today time.Time) error {
	var count int64
	if err := db.Model(&entity.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zap.L().Info("sample data already present, skipping seed")
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		departments := make([]entity.Department, len(sampleDepartments))
		for i, name := range sampleDepartments {
			departments[i] = entity.Department{Name: name}
		}
		if err := tx.Create(&departments).Error; err != nil {
			return err
		}

		postings := make([]entity.Posting, len(samplePostings))
		for i, p := range samplePostings {
			open := today.AddDate(0, 0, p.openInDays)
			postings[i] = entity.Posting{
				Title:        p.title,
				Description:  p.description,
				DepartmentID: departments[p.department].ID,
				OpenDate:     open,
				CloseDate:    open.Add(postingLength),
			}
		}
		if err := tx.Create(&postings).Error; err != nil {
			return err
		}

		for _, a := range sampleApplicants {
			dob, err := entity.ParseDate(a.dob)
			if err != nil {
				return err
			}
			gpa := a.gpa
			applicant := entity.Applicant{
				NationalID:  a.nationalID,
				Name:        a.name,
				Gender:      a.gender,
				DateOfBirth: dob,
				Address:     a.address,
				Phone:       a.phone,
				University:  a.university,
				Major:       a.major,
				GPA:         &gpa,
				CVFileRef:   "sample/" + a.nationalID + "-cv.pdf",
			}
			if err := tx.Create(&applicant).Error; err != nil {
				return err
			}

			application := entity.Application{
				ApplicantID: applicant.ID,
				PostingID:   postings[a.posting].ID,
				Status:      a.status,
			}
			if err := tx.Create(&application).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}

	zap.L().Info("sample data seeded",
		zap.Int("departments", len(sampleDepartments)),
		zap.Int("postings", len(samplePostings)),
		zap.Int("applicants", len(sampleApplicants)),
	)
	return nil
}
