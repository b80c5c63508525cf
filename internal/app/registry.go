package app

import (
	"context"
	"database/sql"

	"lemonpay/internal/attendance"
	"lemonpay/internal/employee"
	"lemonpay/internal/expense"
	"lemonpay/internal/leave"
	"lemonpay/internal/messaging/kafka"
	"lemonpay/internal/middleware"
	"lemonpay/internal/note"
	"lemonpay/internal/project"
	"lemonpay/internal/rbac"
	"lemonpay/internal/shared/counter"
	"lemonpay/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// employeeDirectory adapts the employee service to the directory contract the
// leave and expense modules consume, avoiding a package cycle.
type employeeDirectory struct {
	employees employee.Service
}

func (d *employeeDirectory) Lookup(ctx context.Context, identifier string) (leave.DirectoryEntry, error) {
	opt, err := d.employees.Lookup(ctx, identifier)
	if err != nil {
		return leave.DirectoryEntry{}, err
	}
	return leave.DirectoryEntry{
		EmployeeID: opt.EmployeeNumber,
		FullName:   opt.FullName,
	}, nil
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	noteRepo := note.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	projectRepo := project.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	directory := &employeeDirectory{employees: employeeService}
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, directory, outboxRepo)
	expenseService := expense.NewService(db, expenseRepo, directory, outboxRepo)
	noteService := note.NewService(noteRepo)
	projectService := project.NewService(db, projectRepo)
	taskService := task.NewService(db, taskRepo, outboxRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	expenseHandler := expense.NewHandler(expenseService)
	leaveHandler := leave.NewHandler(leaveService)
	noteHandler := note.NewHandler(noteService)
	projectHandler := project.NewHandler(projectService)
	taskHandler := task.NewHandler(taskService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		expense.RegisterRoutes(api, expenseHandler, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		note.RegisterRoutes(api, noteHandler, rbacService)
		project.RegisterRoutes(api, projectHandler, rbacService)
		task.RegisterRoutes(api, taskHandler, rbacService)
	}

	return nil
}
