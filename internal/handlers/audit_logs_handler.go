package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
	"github.com/BruksfildServices01/clinic-booking/internal/timezone"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditLogsHandler pages through recorded audit events. It is mounted only
// for the postgres backend, where GormSink writes the audit_logs table.
type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditQuery struct {
	action string
	entity string
	from   *time.Time
	to     *time.Time
	page   int
	limit  int
}

// parseAuditQuery tolerates bad paging and date values by falling back to
// defaults rather than rejecting the request.
func parseAuditQuery(c *gin.Context) auditQuery {
	q := auditQuery{
		action: c.Query("action"),
		entity: c.Query("entity"),
		page:   1,
		limit:  defaultAuditLimit,
	}

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		q.page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= maxAuditLimit {
		q.limit = l
	}
	if d, err := time.Parse(timezone.DateLayout, c.Query("from")); err == nil {
		q.from = &d
	}
	if d, err := time.Parse(timezone.DateLayout, c.Query("to")); err == nil {
		end := d.Add(24 * time.Hour)
		q.to = &end
	}
	return q
}

func (q auditQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.action != "" {
		tx = tx.Where("action = ?", q.action)
	}
	if q.entity != "" {
		tx = tx.Where("entity = ?", q.entity)
	}
	if q.from != nil {
		tx = tx.Where("created_at >= ?", *q.from)
	}
	if q.to != nil {
		tx = tx.Where("created_at < ?", *q.to)
	}
	return tx
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := parseAuditQuery(c)
	base := q.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	logs := []models.AuditLog{}
	if err := base.
		Order("created_at DESC").
		Limit(q.limit).
		Offset((q.page - 1) * q.limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  q.page,
		"limit": q.limit,
		"total": total,
		"logs":  logs,
	})
}
