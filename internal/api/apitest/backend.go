// Package apitest provides an in-memory backend that serves the project, organization,
// skill and auth endpoints the client talks to. It is meant for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"c4sg/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// SigningKey signs the tokens issued by the backend
var SigningKey = []byte("apitest-signing-key")

// DefaultSearchSize is the page size of a search that names none, as with a Spring Pageable
const DefaultSearchSize = 20

type linkKey struct {
	projectID int64
	userID    int64
	status    models.LinkStatus
}

type failure struct {
	status  int
	message string
}

type account struct {
	user     models.User
	password string
}

// Backend is an in-memory stand-in for the REST service
type Backend struct {
	mu sync.Mutex

	nextID        int64
	projects      map[int64]*models.Project
	organizations map[int64]*models.Organization
	userOrgs      map[int64][]int64
	projectSkills map[int64][]string
	catalog       []models.Skill
	links         map[linkKey]bool
	images        map[int64]string
	accounts      map[string]account

	hits     map[string]int
	failures map[string]failure

	// LastSkillsUpdate holds the body of the most recent skills update
	LastSkillsUpdate []string
}

// New creates an empty backend
func New() *Backend {
	return &Backend{
		nextID:        1000,
		projects:      make(map[int64]*models.Project),
		organizations: make(map[int64]*models.Organization),
		userOrgs:      make(map[int64][]int64),
		projectSkills: make(map[int64][]string),
		links:         make(map[linkKey]bool),
		images:        make(map[int64]string),
		accounts:      make(map[string]account),
		hits:          make(map[string]int),
		failures:      make(map[string]failure),
	}
}

// Start serves the backend on an httptest server that is closed with the test
func (b *Backend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(b.Router())
	t.Cleanup(server.Close)
	return server
}

// AddProject stores a project with its skills
func (b *Backend) AddProject(p models.Project) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	skills := p.Skills
	p.Skills = nil
	b.projects[p.ID] = &p
	if skills != nil {
		b.projectSkills[p.ID] = append([]string(nil), skills...)
	}
}

// AddOrganization stores an organization and links its users to it
func (b *Backend) AddOrganization(o models.Organization, userIDs ...int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.organizations[o.ID] = &o
	for _, id := range userIDs {
		b.userOrgs[id] = append(b.userOrgs[id], o.ID)
	}
}

// AddSkills extends the skill catalog
func (b *Backend) AddSkills(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		b.catalog = append(b.catalog, models.Skill{ID: int64(len(b.catalog) + 1), Name: name})
	}
}

// AddLink records an existing user-project link
func (b *Backend) AddLink(projectID, userID int64, status models.LinkStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.links[linkKey{projectID, userID, status}] = true
}

// HasLink reports whether the link exists
func (b *Backend) HasLink(projectID, userID int64, status models.LinkStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.links[linkKey{projectID, userID, status}]
}

// AddAccount registers credentials accepted by the login endpoint
func (b *Backend) AddAccount(user models.User, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[user.Email] = account{user: user, password: password}
}

// Project returns a copy of the stored project
func (b *Backend) Project(id int64) (models.Project, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[id]
	if !ok {
		return models.Project{}, false
	}
	cp := *p
	cp.Skills = append([]string(nil), b.projectSkills[id]...)
	return cp, true
}

// SetImage stores the image URL of a project
func (b *Backend) SetImage(id int64, url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.images[id] = url
}

// Image returns the stored image URL of a project
func (b *Backend) Image(id int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.images[id]
}

// Fail makes the route answer with status and a JSON message. The route is
// "METHOD pattern", for example "GET /api/organizations/{id}".
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, message: message}
}

// Hits returns how many times the route was called
func (b *Backend) Hits(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

// TotalHits returns the number of handled requests
func (b *Backend) TotalHits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.hits {
		total += n
	}
	return total
}

// IssueToken returns a signed session token for the user
func IssueToken(userID int64, email, role string) string {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return token
}

// Router builds the chi router of the backend
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()

	b.handle(r, http.MethodGet, "/api/projects/search", b.searchProjects)
	b.handle(r, http.MethodGet, "/api/projects/organization", b.projectsByOrganization)
	b.handle(r, http.MethodGet, "/api/projects/user", b.projectsByUser)
	b.handle(r, http.MethodGet, "/api/projects/{id}", b.getProject)
	b.handle(r, http.MethodPost, "/api/projects", b.createProject)
	b.handle(r, http.MethodPut, "/api/projects/{id}", b.updateProject)
	b.handle(r, http.MethodDelete, "/api/projects/{id}", b.deleteProject)
	b.handle(r, http.MethodGet, "/api/projects/{id}/image", b.getImage)
	b.handle(r, http.MethodPut, "/api/projects/{id}/image", b.saveImage)
	b.handle(r, http.MethodPost, "/api/projects/{id}/users/{userId}", b.linkUser)

	b.handle(r, http.MethodGet, "/api/organizations/{id}", b.getOrganization)
	b.handle(r, http.MethodGet, "/api/organizations/user/{userId}", b.userOrganizations)

	b.handle(r, http.MethodGet, "/api/skills", b.listSkills)
	b.handle(r, http.MethodGet, "/api/skills/project", b.projectSkillNames)
	b.handle(r, http.MethodPut, "/api/skills/project", b.updateProjectSkills)

	b.handle(r, http.MethodPost, "/api/auth/login", b.login)
	b.handle(r, http.MethodPost, "/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (b *Backend) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	route := method + " " + pattern
	r.MethodFunc(method, pattern, func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		b.hits[route]++
		f, failing := b.failures[route]
		b.mu.Unlock()

		if failing {
			writeError(w, f.status, f.message)
			return
		}
		h(w, req)
	})
}

func (b *Backend) searchProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := strings.ToLower(q.Get("keyWord"))
	skills := q["skills"]
	status := q.Get("status")
	remote := q.Get("remote")

	b.mu.Lock()
	matches := make([]models.Project, 0, len(b.projects))
	for _, p := range b.sortedProjects() {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), keyword) {
			continue
		}
		if status != "" && string(p.Status) != status {
			continue
		}
		if remote != "" && !strings.EqualFold(p.RemoteFlag, remote) {
			continue
		}
		if len(skills) > 0 && !containsAny(b.projectSkills[p.ID], skills) {
			continue
		}
		matches = append(matches, *p)
	}
	b.mu.Unlock()

	total := len(matches)
	size := DefaultSearchSize
	if s, err := strconv.Atoi(q.Get("size")); err == nil && s > 0 {
		size = s
	}
	page, _ := strconv.Atoi(q.Get("page"))
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	matches = matches[start:end]

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"content":       matches,
		"totalElements": total,
	})
}

func (b *Backend) projectsByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := strconv.ParseInt(r.URL.Query().Get("organizationId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "organizationId is required")
		return
	}
	status := r.URL.Query().Get("projectStatus")

	b.mu.Lock()
	projects := []models.Project{}
	for _, p := range b.sortedProjects() {
		if p.OrganizationID == orgID && (status == "" || string(p.Status) == status) {
			projects = append(projects, *p)
		}
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, projects)
}

func (b *Backend) projectsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	status := models.LinkStatus(r.URL.Query().Get("userProjectStatus"))

	b.mu.Lock()
	projects := []models.Project{}
	for _, p := range b.sortedProjects() {
		if b.links[linkKey{p.ID, userID, status}] {
			projects = append(projects, *p)
		}
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, projects)
}

func (b *Backend) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, found := b.Project(id)
	if !found {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	p.Skills = nil
	b.mu.Lock()
	if org, ok := b.organizations[p.OrganizationID]; ok {
		cp := *org
		p.Organization = &cp
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) createProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	b.mu.Lock()
	b.nextID++
	p.ID = b.nextID
	if p.Status == "" {
		p.Status = models.ProjectPending
	}
	stored := p
	stored.Organization = nil
	stored.Skills = nil
	b.projects[p.ID] = &stored
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, stored)
}

func (b *Backend) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.projects[id]; !found {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	p.ID = id
	p.Skills = nil
	if p.Organization != nil {
		if org, found := b.organizations[p.OrganizationID]; found {
			org.Name = p.Organization.Name
		}
		p.Organization = nil
	}
	b.projects[id] = &p
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.projects[id]; !found {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	delete(b.projects, id)
	delete(b.projectSkills, id)
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) getImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": b.Image(id)})
}

func (b *Backend) saveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	b.images[id] = r.URL.Query().Get("imgUrl")
	b.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) linkUser(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	status, err := models.ParseLinkStatus(r.URL.Query().Get("userProjectStatus"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user project status")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	key := linkKey{projectID, userID, status}
	if b.links[key] {
		if status == models.LinkApplied {
			writeError(w, http.StatusBadRequest, "The user already has applied for this project.")
		} else {
			writeError(w, http.StatusBadRequest, "The user already has bookmarked this project.")
		}
		return
	}
	b.links[key] = true
	w.WriteHeader(http.StatusCreated)
}

func (b *Backend) getOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	org, found := b.organizations[id]
	var cp models.Organization
	if found {
		cp = *org
	}
	b.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "Organization not found")
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

func (b *Backend) userOrganizations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	b.mu.Lock()
	orgs := []models.Organization{}
	for _, id := range b.userOrgs[userID] {
		if org, found := b.organizations[id]; found {
			orgs = append(orgs, *org)
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, orgs)
}

func (b *Backend) listSkills(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	skills := append([]models.Skill{}, b.catalog...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, skills)
}

func (b *Backend) projectSkillNames(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	b.mu.Lock()
	names := append([]string{}, b.projectSkills[id]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, names)
}

func (b *Backend) updateProjectSkills(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill list")
		return
	}
	b.mu.Lock()
	b.projectSkills[id] = names
	b.LastSkillsUpdate = names
	b.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	b.mu.Lock()
	acct, found := b.accounts[creds.Email]
	b.mu.Unlock()
	if !found || acct.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": IssueToken(acct.user.ID, acct.user.Email, acct.user.Role),
		"user": map[string]interface{}{
			"id":    acct.user.ID,
			"email": acct.user.Email,
		},
	})
}

// sortedProjects must be called with b.mu held
func (b *Backend) sortedProjects() []*models.Project {
	projects := make([]*models.Project, 0, len(b.projects))
	for _, p := range b.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}
