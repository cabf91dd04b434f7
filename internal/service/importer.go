package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/user/learnly/internal/model"
	"github.com/user/learnly/internal/repository"
	"github.com/user/learnly/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// FlexInt 宽容的整数类型：上游目录源的 id 和分钟数有时是数字有时是字符串
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		// 尝试按浮点解析（json-server 偶尔返回 7.0 这种）
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("无法解析整数: %s", s)
		}
		n = int(fl)
	}
	*f = FlexInt(n)
	return nil
}

// FlexDuration 宽容的时长类型：数字按分钟数处理，归一化为 "<n>m" 字符串，
// 普通字符串（"1h 30m" 等）原样保留，交给 progress.Parse 解析
type FlexDuration string

func (f *FlexDuration) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		// 纯数字字符串也按分钟数处理
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			*f = FlexDuration(strconv.Itoa(n) + "m")
			return nil
		}
		*f = FlexDuration(str)
		return nil
	}

	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("无法解析时长: %s", s)
	}
	*f = FlexDuration(strconv.Itoa(int(fl)) + "m")
	return nil
}

// 上游目录源的原始记录结构
type rawLesson struct {
	Title    string       `json:"title"`
	Duration FlexDuration `json:"duration"`
	Order    int          `json:"order"`
}

type rawChapter struct {
	Title   string      `json:"title"`
	Order   int         `json:"order"`
	Lessons []rawLesson `json:"lessons"`
}

type rawCourse struct {
	ID          FlexInt      `json:"id"`
	Name        string       `json:"name"`
	TeacherID   FlexInt      `json:"teacherId"`
	Price       float64      `json:"price"`
	Discount    int          `json:"discount"`
	Vote        float64      `json:"vote"`
	VoteCount   int          `json:"voteCount"`
	Like        int          `json:"like"`
	Share       int          `json:"share"`
	Category    string       `json:"category"`
	Duration    FlexDuration `json:"duration"`
	Description string       `json:"description"`
	LessonCount int          `json:"lessonCount"`
	Image       string       `json:"image"`
	Tags        []string     `json:"tags"`
	Chapters    []rawChapter `json:"chapters"`
}

// courseTags 整理课程标签：去掉空白项，上游没给标签时退回到分类
func courseTags(raw rawCourse) pq.StringArray {
	tags := make(pq.StringArray, 0, len(raw.Tags))
	for _, t := range raw.Tags {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 && strings.TrimSpace(raw.Category) != "" {
		tags = append(tags, strings.TrimSpace(raw.Category))
	}
	return tags
}

type rawTeacher struct {
	ID        FlexInt `json:"id"`
	Name      string  `json:"name"`
	Job       string  `json:"Job"`
	Location  string  `json:"location"`
	TimeWork  string  `json:"timeWork"`
	Image     string  `json:"image"`
	School    string  `json:"school"`
	Vote      float64 `json:"vote"`
	VoteCount int     `json:"voteCount"`
}

type rawProgress struct {
	TimeWatched FlexInt `json:"time_watched"`
}

type rawUser struct {
	ID              FlexInt                `json:"id"`
	Name            string                 `json:"name"`
	Job             string                 `json:"job"`
	Image           string                 `json:"image"`
	UserName        string                 `json:"userName"`
	Password        string                 `json:"password"`
	SavedCourseList []FlexInt              `json:"savedCourseList"`
	Cart            []FlexInt              `json:"cart"`
	PurchaseCourse  map[string]rawProgress `json:"purchaseCourse"`
}

// Importer 目录导入服务：从上游目录源拉取课程/讲师/用户种子并写入本地库
type Importer struct {
	repos        *repository.Repositories
	catalog      *CatalogService
	client       *utils.HTTPClient
	baseURL      string
	siteURL      string // 课程公开页，用于补全缺失的图片和描述
	embedAPIKey  string
	embedModel   string
	syncInterval time.Duration
}

// NewImporter 创建导入服务
func NewImporter(repos *repository.Repositories, catalog *CatalogService, baseURL, siteURL, embedAPIKey, embedModel string) *Importer {
	return &Importer{
		repos:        repos,
		catalog:      catalog,
		client:       utils.NewHTTPClient(10 * time.Second),
		baseURL:      strings.TrimRight(baseURL, "/"),
		siteURL:      strings.TrimRight(siteURL, "/"),
		embedAPIKey:  embedAPIKey,
		embedModel:   embedModel,
		syncInterval: 6 * time.Hour,
	}
}

// Start 启动周期同步
func (s *Importer) Start() {
	if s.baseURL == "" {
		log.Println("[Importer] 未配置上游目录源，跳过同步")
		return
	}

	go func() {
		// 启动时先同步一次
		if err := s.Sync(context.Background()); err != nil {
			log.Printf("[Importer] 首次同步失败: %v", err)
		}

		ticker := time.NewTicker(s.syncInterval)
		for range ticker.C {
			if err := s.Sync(context.Background()); err != nil {
				log.Printf("[Importer] 同步失败: %v", err)
			}
		}
	}()
}

// Sync 执行一次完整同步：并发拉取三类数据，再依次落库
func (s *Importer) Sync(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var (
		courses  []rawCourse
		teachers []rawTeacher
		users    []rawUser
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.client.GetJSON(gctx, s.baseURL+"/courses", &courses)
	})
	g.Go(func() error {
		return s.client.GetJSON(gctx, s.baseURL+"/teachers", &teachers)
	})
	g.Go(func() error {
		return s.client.GetJSON(gctx, s.baseURL+"/users", &users)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("拉取上游数据失败: %w", err)
	}

	s.importTeachers(teachers)
	s.importCourses(ctx, courses)
	s.importUsers(users)

	if s.embedAPIKey != "" {
		s.refreshEmbeddings(ctx)
	}

	// 目录变了，缓存作废
	s.catalog.InvalidateCaches()

	log.Printf("[Importer] 同步完成: %d 门课程, %d 位讲师, %d 个种子用户",
		len(courses), len(teachers), len(users))
	return nil
}

func (s *Importer) importTeachers(teachers []rawTeacher) {
	for _, t := range teachers {
		if t.ID <= 0 {
			continue
		}
		instructor := &model.Instructor{
			ID:        int(t.ID),
			Name:      t.Name,
			Job:       t.Job,
			Location:  t.Location,
			TimeWork:  t.TimeWork,
			School:    t.School,
			Image:     t.Image,
			Vote:      t.Vote,
			VoteCount: t.VoteCount,
		}
		if err := s.repos.Instructor.Upsert(instructor); err != nil {
			log.Printf("[Importer] 讲师 %d 写入失败: %v", t.ID, err)
		}
	}
}

func (s *Importer) importCourses(ctx context.Context, courses []rawCourse) {
	for _, raw := range courses {
		if raw.ID <= 0 {
			continue
		}

		course := &model.Course{
			ID:           int(raw.ID),
			Name:         utils.CleanCourseTitle(raw.Name),
			InstructorID: int(raw.TeacherID),
			Price:        raw.Price,
			Discount:     raw.Discount,
			Vote:         raw.Vote,
			VoteCount:    raw.VoteCount,
			Like:         raw.Like,
			Share:        raw.Share,
			Category:     raw.Category,
			Duration:     string(raw.Duration),
			Description:  raw.Description,
			LessonCount:  raw.LessonCount,
			Image:        raw.Image,
			Tags:         courseTags(raw),
		}

		// 上游缺图或缺描述时尝试从课程公开页补全
		if s.siteURL != "" && (course.Image == "" || course.Description == "") {
			s.enrichFromPage(ctx, course)
		}

		if err := s.repos.Course.Upsert(course); err != nil {
			log.Printf("[Importer] 课程 %d 写入失败: %v", raw.ID, err)
			continue
		}

		if len(raw.Chapters) > 0 {
			chapters := make([]model.Chapter, 0, len(raw.Chapters))
			for _, rc := range raw.Chapters {
				chapter := model.Chapter{
					Title:     rc.Title,
					SortOrder: rc.Order,
				}
				for j, rl := range rc.Lessons {
					order := rl.Order
					if order == 0 {
						order = j + 1
					}
					chapter.Lessons = append(chapter.Lessons, model.Lesson{
						Title:     rl.Title,
						Duration:  string(rl.Duration),
						SortOrder: order,
					})
				}
				chapters = append(chapters, chapter)
			}
			if err := s.repos.Course.ReplaceChapters(course.ID, chapters); err != nil {
				log.Printf("[Importer] 课程 %d 章节写入失败: %v", course.ID, err)
			}
		}
	}
}

func (s *Importer) importUsers(users []rawUser) {
	for _, raw := range users {
		if raw.ID <= 0 || raw.UserName == "" {
			continue
		}

		hash, err := bcryptHash(raw.Password)
		if err != nil {
			log.Printf("[Importer] 用户 %d 密码哈希失败: %v", raw.ID, err)
			continue
		}

		user := &model.User{
			ID:           int(raw.ID),
			Email:        raw.UserName + "@seed.local",
			Username:     raw.UserName,
			PasswordHash: hash,
			Name:         raw.Name,
			Job:          raw.Job,
			Image:        raw.Image,
			Role:         "user",
		}
		if err := s.repos.User.UpsertSeed(user); err != nil {
			log.Printf("[Importer] 用户 %d 写入失败: %v", raw.ID, err)
			continue
		}

		for _, courseID := range raw.Cart {
			if courseID <= 0 {
				continue
			}
			if err := s.repos.Cart.Add(user.ID, int(courseID)); err != nil {
				log.Printf("[Importer] 用户 %d 购物车 %d 写入失败: %v", user.ID, courseID, err)
			}
		}

		for _, courseID := range raw.SavedCourseList {
			if courseID <= 0 {
				continue
			}
			if err := s.repos.Saved.Add(user.ID, int(courseID)); err != nil {
				log.Printf("[Importer] 用户 %d 收藏 %d 写入失败: %v", user.ID, courseID, err)
			}
		}

		for key, p := range raw.PurchaseCourse {
			courseID, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil || courseID <= 0 {
				// 键不是合法课程 id，丢弃
				continue
			}
			e := &model.Enrollment{
				UserID:      user.ID,
				CourseID:    courseID,
				TimeWatched: int(p.TimeWatched),
			}
			if err := s.repos.Enrollment.Upsert(e); err != nil {
				log.Printf("[Importer] 用户 %d 进度 %d 写入失败: %v", user.ID, courseID, err)
			}
		}
	}
}

// enrichFromPage 抓取课程公开页，从 og 标签补全图片和描述
func (s *Importer) enrichFromPage(ctx context.Context, course *model.Course) {
	url := fmt.Sprintf("%s/courses/%d", s.siteURL, course.ID)

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		log.Printf("[Importer] 课程页 %s 抓取失败: %v", url, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("[Importer] 课程页 %s 解析失败: %v", url, err)
		return
	}

	if course.Image == "" {
		if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
			course.Image = img
		}
	}
	if course.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			course.Description = strings.TrimSpace(desc)
		}
	}
}

// refreshEmbeddings 为还没有语义向量的课程生成向量
func (s *Importer) refreshEmbeddings(ctx context.Context) {
	courses, err := s.repos.Course.ListMissingEmbedding(50)
	if err != nil {
		log.Printf("[Importer] 查询待向量化课程失败: %v", err)
		return
	}

	for _, course := range courses {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var sb bytes.Buffer
		sb.WriteString(course.Name)
		sb.WriteString("\n")
		sb.WriteString(course.Category)
		sb.WriteString("\n")
		sb.WriteString(course.Description)

		values, err := utils.EmbedText(s.embedAPIKey, s.embedModel, sb.String())
		if err != nil {
			log.Printf("[Importer] 课程 %d 向量生成失败: %v", course.ID, err)
			continue
		}

		if err := s.repos.Course.UpdateEmbedding(course.ID, pgvector.NewVector(values)); err != nil {
			log.Printf("[Importer] 课程 %d 向量写入失败: %v", course.ID, err)
		}
	}
}
