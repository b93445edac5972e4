package ez

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	mdw "farmasaude-api/internal/transport/http/middleware"
	resp "farmasaude-api/internal/transport/http/response"
	"farmasaude-api/pkg/utils"
)

// Hook
type CrudHooks[T any] struct {
	BeforeCreate func(c *gin.Context, m *T) error
	BeforeUpdate func(c *gin.Context, m *T) error
	ScopeList    func(c *gin.Context, q *gorm.DB) *gorm.DB // 自定义筛选/排序
	AfterGet     func(c *gin.Context, m *T)
	AfterWrite   func(c *gin.Context, id string) // 写操作提交后（缓存失效等）
}

// CrudConfig 归属者视角的 CRUD：所有读写都按 Owner 过滤，
// 非本人创建的资源一律按不存在处理。
type CrudConfig[T any] struct {
	DB    *gorm.DB
	Group *gin.RouterGroup // 已鉴权分组（能拿 userId）
	Path  string
	New   func() *T

	Hooks CrudHooks[T]

	AllowCreate bool
	AllowList   bool
	AllowGet    bool
	AllowUpdate bool
	AllowDelete bool

	IDField    string // 默认 "ID"
	OwnerField string // 默认优先 "OwnerID"，其次 "UserID"/"UID"

	AutoID bool          // 默认 true
	IDGen  func() string // 默认 utils.NewID

	// 列表排序（列名按模型字段自动转 snake_case），为空则按 ID DESC
	OrderBy string // 例如 "created_at DESC"
}

// 反射 & 工具
func (c *CrudConfig[T]) idFieldCandidates() []string {
	if c.IDField != "" {
		return []string{c.IDField, "ID", "Id"}
	}
	return []string{"ID", "Id"}
}

func (c *CrudConfig[T]) ownerFieldCandidates() []string {
	if c.OwnerField != "" {
		return []string{c.OwnerField, "OwnerID", "UserID", "UID"}
	}
	return []string{"OwnerID", "UserID", "UID"}
}

func getStringFieldPtr(obj any, candidates []string) (*string, bool) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr {
		return nil, false
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		// 未导出字段跳过
		if f.PkgPath != "" {
			continue
		}
		for _, cand := range candidates {
			if f.Name == cand {
				fv := v.Field(i)
				if fv.Kind() == reflect.String && fv.CanSet() {
					p := fv.Addr().Interface().(*string)
					return p, true
				}
			}
		}
	}
	return nil, false
}

func readStringField(obj any, candidates []string) (string, bool) {
	p, ok := getStringFieldPtr(obj, candidates)
	if !ok {
		return "", false
	}
	return *p, true
}

func writeStringField(obj any, candidates []string, val string) bool {
	p, ok := getStringFieldPtr(obj, candidates)
	if !ok {
		return false
	}
	*p = val
	return true
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func toSnake(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mergeBody 把 JSON 请求体解码到已加载的记录上（binding 校验照常跑）
func mergeBody(c *gin.Context, dst any) error {
	return c.ShouldBindJSON(dst)
}

func writeErr(c *gin.Context, code int, msg string) {
	c.JSON(resp.HTTPStatus(code), resp.Error(code, msg))
}

// Crud 注册（无需模型实现任何接口）
func Crud[T any](cfg CrudConfig[T]) {
	// 默认放开所有操作
	if !cfg.AllowCreate && !cfg.AllowGet && !cfg.AllowList && !cfg.AllowUpdate && !cfg.AllowDelete {
		cfg.AllowCreate, cfg.AllowList, cfg.AllowGet, cfg.AllowUpdate, cfg.AllowDelete = true, true, true, true, true
	}
	if !cfg.AutoID && cfg.IDGen == nil {
		cfg.AutoID = true
	}
	if cfg.IDGen == nil {
		cfg.IDGen = utils.NewID
	}

	idFieldNames := cfg.idFieldCandidates()
	ownerFieldNames := cfg.ownerFieldCandidates()

	afterWrite := func(c *gin.Context, id string) {
		if cfg.Hooks.AfterWrite != nil {
			cfg.Hooks.AfterWrite(c, id)
		}
	}

	// Create
	if cfg.AllowCreate {
		cfg.Group.POST(cfg.Path, func(c *gin.Context) {
			m := cfg.New()
			if err := c.ShouldBindJSON(m); err != nil {
				writeErr(c, resp.CodeBadRequest, err.Error())
				return
			}
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				writeErr(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			// 自动生成 ID（若开启且为空）
			if cfg.AutoID {
				if id, ok := readStringField(m, idFieldNames); !ok {
					writeErr(c, resp.CodeBadRequest, "id field not found")
					return
				} else if strings.TrimSpace(id) == "" {
					_ = writeStringField(m, idFieldNames, cfg.IDGen())
				}
			}
			// 写 Owner
			if !writeStringField(m, ownerFieldNames, uid) {
				writeErr(c, resp.CodeBadRequest, "owner field not found")
				return
			}

			if cfg.Hooks.BeforeCreate != nil {
				if err := cfg.Hooks.BeforeCreate(c, m); err != nil {
					writeErr(c, resp.CodeBadRequest, err.Error())
					return
				}
			}
			if err := cfg.DB.WithContext(c).Create(m).Error; err != nil {
				writeErr(c, resp.CodeBadRequest, err.Error())
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			id, _ := readStringField(m, idFieldNames)
			afterWrite(c, id)
			c.JSON(http.StatusCreated, resp.OK(m))
		})
	}

	// List（我的）
	if cfg.AllowList {
		cfg.Group.GET(cfg.Path, func(c *gin.Context) {
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				writeErr(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			page := atoiDefault(c.Query("page"), 1)
			size := atoiDefault(c.Query("size"), 20)
			if size <= 0 || size > 100 {
				size = 20
			}
			offset := (page - 1) * size

			// 用结构体 Where 自动映射列名，避免手写 owner_id
			ownerFilter := cfg.New()
			if !writeStringField(ownerFilter, ownerFieldNames, uid) {
				writeErr(c, resp.CodeBadRequest, "owner field not found")
				return
			}

			q := cfg.DB.WithContext(c).Model(cfg.New()).Where(ownerFilter)
			if cfg.Hooks.ScopeList != nil {
				q = cfg.Hooks.ScopeList(c, q)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				writeErr(c, resp.CodeServerError, err.Error())
				return
			}

			var items []T
			if cfg.OrderBy != "" {
				q = q.Order(cfg.OrderBy)
			} else {
				idCol := toSnake(idFieldNames[0])
				if idCol == "" {
					idCol = "id"
				}
				q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: idCol}, Desc: true})
			}
			if err := q.Limit(size).Offset(offset).Find(&items).Error; err != nil {
				writeErr(c, resp.CodeServerError, err.Error())
				return
			}
			if cfg.Hooks.AfterGet != nil {
				for i := range items {
					cfg.Hooks.AfterGet(c, &items[i])
				}
			}
			c.JSON(http.StatusOK, resp.OK(gin.H{
				"list": items, "total": total, "page": page, "size": size,
			}))
		})
	}

	// Get
	if cfg.AllowGet {
		cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				writeErr(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			id := c.Param("id")

			filter := cfg.New()
			_ = writeStringField(filter, idFieldNames, id)
			_ = writeStringField(filter, ownerFieldNames, uid)

			m := cfg.New()
			if err := cfg.DB.WithContext(c).Where(filter).First(m).Error; err != nil {
				writeErr(c, resp.CodeNotFound, "not found")
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			c.JSON(http.StatusOK, resp.OK(m))
		})
	}

	// Update
	if cfg.AllowUpdate {
		cfg.Group.PUT(cfg.Path+"/:id", func(c *gin.Context) {
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				writeErr(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			id := c.Param("id")

			// 先按归属加载现有记录
			filter := cfg.New()
			_ = writeStringField(filter, idFieldNames, id)
			_ = writeStringField(filter, ownerFieldNames, uid)
			m := cfg.New()
			if err := cfg.DB.WithContext(c).Where(filter).First(m).Error; err != nil {
				writeErr(c, resp.CodeNotFound, "not found")
				return
			}

			// 合并到已加载的记录上，随后整体 Save：
			// 显式传的零值（quantity:0、description:""）落库，
			// body 里没出现的字段保持原值
			if err := mergeBody(c, m); err != nil {
				writeErr(c, resp.CodeBadRequest, err.Error())
				return
			}
			// 强制保持 ID/Owner
			_ = writeStringField(m, idFieldNames, id)
			_ = writeStringField(m, ownerFieldNames, uid)

			if cfg.Hooks.BeforeUpdate != nil {
				if err := cfg.Hooks.BeforeUpdate(c, m); err != nil {
					writeErr(c, resp.CodeBadRequest, err.Error())
					return
				}
			}
			if err := cfg.DB.WithContext(c).Save(m).Error; err != nil {
				writeErr(c, resp.CodeBadRequest, err.Error())
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			afterWrite(c, id)
			c.JSON(http.StatusOK, resp.OK(m))
		})
	}

	// Delete
	if cfg.AllowDelete {
		cfg.Group.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				writeErr(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			id := c.Param("id")

			filter := cfg.New()
			_ = writeStringField(filter, idFieldNames, id)
			_ = writeStringField(filter, ownerFieldNames, uid)

			res := cfg.DB.WithContext(c).Where(filter).Delete(cfg.New())
			if res.Error != nil {
				writeErr(c, resp.CodeServerError, res.Error.Error())
				return
			}
			if res.RowsAffected == 0 {
				writeErr(c, resp.CodeNotFound, "not found")
				return
			}
			afterWrite(c, id)
			c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
		})
	}
}
