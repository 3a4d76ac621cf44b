package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/stemsi/school-backend/internal/config"
	"github.com/stemsi/school-backend/internal/database"
	"github.com/stemsi/school-backend/internal/logger"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository"
	"github.com/stemsi/school-backend/internal/service"
)

var courseNames = []string{
	"Mathematics", "Chemistry", "Physics", "Biology", "History",
	"Geography", "Literature", "Computer Science", "Economics", "Art",
}

var names = []string{
	"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
	"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
	"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
	"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
}

func main() {
	perStudent := flag.Int("courses-per-student", 3, "Courses each seeded student is enrolled in")
	flag.Parse()

	cfg := config.Load()
	log := logger.Component(logger.Setup(cfg.LogLevel, cfg.LogFormat), "seed")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	courseRepo := repository.NewCourseRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)

	courseService := service.NewCourseService(courseRepo, log)
	studentService := service.NewStudentService(studentRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, studentRepo, service.DefaultEnrollmentLimits, log)

	fmt.Printf("=== Seeding %d courses and %d students ===\n", len(courseNames), len(names))

	courses := make([]*model.Course, 0, len(courseNames))
	for _, name := range courseNames {
		c, err := courseService.Create(ctx, name)
		if err != nil {
			log.Fatal().Err(err).Str("course", name).Msg("Failed to create course")
		}
		courses = append(courses, c)
	}

	created, enrolled := 0, 0
	for i, full := range names {
		first, last, _ := strings.Cut(full, " ")
		email := fmt.Sprintf("%s.%s@school.example", strings.ToLower(first), strings.ToLower(last))

		s, err := studentService.Register(ctx, model.RegisterStudentRequest{
			FirstName:    first,
			LastName:     last,
			EmailAddress: email,
		})
		var dup *service.DuplicateEmailError
		if errors.As(err, &dup) {
			// Already seeded by an earlier run.
			s, err = studentService.GetByEmail(ctx, email)
		} else if err == nil {
			created++
		}
		if err != nil {
			fmt.Printf("Error registering %s: %v\n", email, err)
			continue
		}

		for k := 0; k < *perStudent; k++ {
			c := courses[(i+k)%len(courses)]
			if err := enrollmentService.Enroll(ctx, c.ID, s.ID); err != nil {
				fmt.Printf("Skip enrolling %s in %s: %v\n", email, c.Name, err)
				continue
			}
			enrolled++
		}
	}

	fmt.Printf("\nSeed completed! %d new students, %d enrollments.\n", created, enrolled)
}
