package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/studiodesk/internal/ports/primary"
)

// maxUploadBytes bounds a processed-image upload request.
const maxUploadBytes = 64 << 20

// --- clients ---

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	client, err := s.services.Clients.CreateClient(r.Context(), primary.CreateClientRequest{
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Status: body.Status,
		Notes:  body.Notes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, clientToJSON(client))
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	client, err := s.services.Clients.GetClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clientToJSON(client))
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.services.Clients.ListClients(r.Context(), primary.ClientFilters{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clientsToJSON(clients))
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	err := s.services.Clients.UpdateClient(r.Context(), primary.UpdateClientRequest{
		ClientID: mux.Vars(r)["id"],
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Status:   body.Status,
		Notes:    body.Notes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Clients.DeleteClient(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) adjustClientCounter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var body struct {
		Delta int `json:"delta"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	var (
		client *primary.Client
		err    error
	)
	switch vars["counter"] {
	case "servings":
		client, err = s.services.Clients.AdjustServings(r.Context(), vars["id"], body.Delta)
	case "images":
		client, err = s.services.Clients.AdjustImages(r.Context(), vars["id"], body.Delta)
	case "training-units":
		client, err = s.services.Clients.AdjustTrainingUnits(r.Context(), vars["id"], body.Delta)
	default:
		s.writeBadRequest(w, fmt.Errorf("unknown counter: %s", vars["counter"]))
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clientToJSON(client))
}

func (s *Server) assignClientPackage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAssignRequest(r)
	if err != nil {
		s.writeBadRequest(w, err)
		return
	}

	client, err := s.services.Clients.AssignPackage(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clientToJSON(client))
}

func (s *Server) quickAssignClientPackage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PackageID string `json:"package_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	client, err := s.services.Clients.QuickAssignPackage(r.Context(), mux.Vars(r)["id"], body.PackageID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clientToJSON(client))
}

// decodeAssignRequest parses an assignment body. Servings and images stay
// nullable so the zero-grant default can be applied by the service.
func decodeAssignRequest(r *http.Request) (primary.AssignPackageRequest, error) {
	var body struct {
		PackageID string `json:"package_id"`
		Servings  *int   `json:"servings"`
		Images    *int   `json:"images"`
		Note      string `json:"note"`
	}
	if err := decodeBody(r, &body); err != nil {
		return primary.AssignPackageRequest{}, err
	}
	return primary.AssignPackageRequest{
		EntityID:  mux.Vars(r)["id"],
		PackageID: body.PackageID,
		Servings:  body.Servings,
		Images:    body.Images,
		Note:      body.Note,
	}, nil
}

// --- affiliates ---

func (s *Server) createAffiliate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name              string `json:"name"`
		Email             string `json:"email"`
		Phone             string `json:"phone"`
		CommissionPercent int    `json:"commission_percent"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	affiliate, err := s.services.Affiliates.CreateAffiliate(r.Context(), primary.CreateAffiliateRequest{
		Name:              body.Name,
		Email:             body.Email,
		Phone:             body.Phone,
		CommissionPercent: body.CommissionPercent,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, affiliateToJSON(affiliate))
}

func (s *Server) getAffiliate(w http.ResponseWriter, r *http.Request) {
	affiliate, err := s.services.Affiliates.GetAffiliate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, affiliateToJSON(affiliate))
}

func (s *Server) listAffiliates(w http.ResponseWriter, r *http.Request) {
	affiliates, err := s.services.Affiliates.ListAffiliates(r.Context(), primary.AffiliateFilters{
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, affiliatesToJSON(affiliates))
}

func (s *Server) updateAffiliate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name              string `json:"name"`
		Email             string `json:"email"`
		Phone             string `json:"phone"`
		CommissionPercent int    `json:"commission_percent"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	err := s.services.Affiliates.UpdateAffiliate(r.Context(), primary.UpdateAffiliateRequest{
		AffiliateID:       mux.Vars(r)["id"],
		Name:              body.Name,
		Email:             body.Email,
		Phone:             body.Phone,
		CommissionPercent: body.CommissionPercent,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteAffiliate(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Affiliates.DeleteAffiliate(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) adjustAffiliateCounter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var body struct {
		Delta int `json:"delta"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	var (
		affiliate *primary.Affiliate
		err       error
	)
	switch vars["counter"] {
	case "servings":
		affiliate, err = s.services.Affiliates.AdjustServings(r.Context(), vars["id"], body.Delta)
	case "images":
		affiliate, err = s.services.Affiliates.AdjustImages(r.Context(), vars["id"], body.Delta)
	case "training-units":
		affiliate, err = s.services.Affiliates.AdjustTrainingUnits(r.Context(), vars["id"], body.Delta)
	default:
		s.writeBadRequest(w, fmt.Errorf("unknown counter: %s", vars["counter"]))
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, affiliateToJSON(affiliate))
}

func (s *Server) assignAffiliatePackage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAssignRequest(r)
	if err != nil {
		s.writeBadRequest(w, err)
		return
	}

	affiliate, err := s.services.Affiliates.AssignPackage(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, affiliateToJSON(affiliate))
}

func (s *Server) quickAssignAffiliatePackage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PackageID string `json:"package_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	affiliate, err := s.services.Affiliates.QuickAssignPackage(r.Context(), mux.Vars(r)["id"], body.PackageID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, affiliateToJSON(affiliate))
}

// --- leads ---

func (s *Server) createLead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Source string `json:"source"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	lead, err := s.services.Leads.CreateLead(r.Context(), primary.CreateLeadRequest{
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Source: body.Source,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, leadToJSON(lead))
}

func (s *Server) getLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.services.Leads.GetLead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, leadToJSON(lead))
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.services.Leads.ListLeads(r.Context(), primary.LeadFilters{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]leadJSON, len(leads))
	for i, l := range leads {
		out[i] = leadToJSON(l)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateLead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Source string `json:"source"`
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	err := s.services.Leads.UpdateLead(r.Context(), primary.UpdateLeadRequest{
		LeadID: mux.Vars(r)["id"],
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Source: body.Source,
		Status: body.Status,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Leads.DeleteLead(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) convertLead(w http.ResponseWriter, r *http.Request) {
	client, err := s.services.Leads.ConvertLead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, clientToJSON(client))
}

// --- packages ---

type packageBody struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	TotalServings         int      `json:"total_servings"`
	TotalImages           int      `json:"total_images"`
	Price                 float64  `json:"price"`
	IsActive              bool     `json:"is_active"`
	MaxEditsPerServing    int      `json:"max_edits_per_serving"`
	MaxProcessingTimeDays int      `json:"max_processing_time_days"`
	FeaturesTags          []string `json:"features_tags"`
}

func (s *Server) createPackage(w http.ResponseWriter, r *http.Request) {
	var body packageBody
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	pkg, err := s.services.Packages.CreatePackage(r.Context(), primary.CreatePackageRequest{
		Name:                  body.Name,
		Description:           body.Description,
		TotalServings:         body.TotalServings,
		TotalImages:           body.TotalImages,
		Price:                 body.Price,
		IsActive:              body.IsActive,
		MaxEditsPerServing:    body.MaxEditsPerServing,
		MaxProcessingTimeDays: body.MaxProcessingTimeDays,
		FeaturesTags:          body.FeaturesTags,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, packageToJSON(pkg))
}

func (s *Server) getPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.services.Packages.GetPackage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, packageToJSON(pkg))
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := s.services.Packages.ListPackages(r.Context(), primary.PackageFilters{
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Limit:      queryInt(r, "limit"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]packageJSON, len(packages))
	for i, p := range packages {
		out[i] = packageToJSON(p)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) updatePackage(w http.ResponseWriter, r *http.Request) {
	var body packageBody
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	err := s.services.Packages.UpdatePackage(r.Context(), primary.UpdatePackageRequest{
		PackageID:             mux.Vars(r)["id"],
		Name:                  body.Name,
		Description:           body.Description,
		TotalServings:         body.TotalServings,
		TotalImages:           body.TotalImages,
		Price:                 body.Price,
		IsActive:              body.IsActive,
		MaxEditsPerServing:    body.MaxEditsPerServing,
		MaxProcessingTimeDays: body.MaxProcessingTimeDays,
		FeaturesTags:          body.FeaturesTags,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deletePackage(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Packages.DeletePackage(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

// --- submissions ---

func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OwnerType         string   `json:"owner_type"`
		OwnerID           string   `json:"owner_id"`
		ItemName          string   `json:"item_name"`
		ItemType          string   `json:"item_type"`
		Ingredients       string   `json:"ingredients"`
		Category          string   `json:"category"`
		OriginalImageURLs []string `json:"original_image_urls"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	submission, err := s.services.Submissions.CreateSubmission(r.Context(), primary.CreateSubmissionRequest{
		OwnerType:         body.OwnerType,
		OwnerID:           body.OwnerID,
		ItemName:          body.ItemName,
		ItemType:          body.ItemType,
		Ingredients:       body.Ingredients,
		Category:          body.Category,
		OriginalImageURLs: body.OriginalImageURLs,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, submissionToJSON(submission))
}

func (s *Server) getSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := s.services.Submissions.GetSubmission(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, submissionToJSON(submission))
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	submissions, err := s.services.Submissions.ListSubmissions(r.Context(), primary.SubmissionFilters{
		OwnerType: q.Get("owner_type"),
		OwnerID:   q.Get("owner_id"),
		Status:    q.Get("status"),
		Limit:     queryInt(r, "limit"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]submissionJSON, len(submissions))
	for i, sub := range submissions {
		out[i] = submissionToJSON(sub)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteSubmission(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Submissions.DeleteSubmission(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) updateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	if err := s.services.Submissions.UpdateStatus(r.Context(), mux.Vars(r)["id"], body.Status); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

// addProcessedImages accepts a multipart form with any number of "file"
// parts plus an optional "external_url" field.
func (s *Server) addProcessedImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeBadRequest(w, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	var uploads []primary.ImageUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["file"] {
			f, err := header.Open()
			if err != nil {
				s.writeBadRequest(w, fmt.Errorf("failed to open upload %s: %w", header.Filename, err))
				return
			}
			defer f.Close()
			uploads = append(uploads, primary.ImageUpload{
				Name:    header.Filename,
				Content: f,
				Size:    header.Size,
			})
		}
	}

	submission, err := s.services.Submissions.AddProcessedImages(
		r.Context(), mux.Vars(r)["id"], uploads, r.FormValue("external_url"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, submissionToJSON(submission))
}

func (s *Server) removeProcessedImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL          string `json:"url"`
		DisplayIndex int    `json:"display_index"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	submission, index, err := s.services.Submissions.RemoveProcessedImage(
		r.Context(), mux.Vars(r)["id"], body.URL, body.DisplayIndex)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Submission   submissionJSON `json:"submission"`
		DisplayIndex int            `json:"display_index"`
	}{submissionToJSON(submission), index})
}

// --- comments ---

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type     string `json:"type"`
		Content  string `json:"content"`
		AuthorID string `json:"author_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	comment, err := s.services.Comments.CreateComment(r.Context(), primary.CreateCommentRequest{
		SubmissionID: mux.Vars(r)["id"],
		Type:         body.Type,
		Content:      body.Content,
		AuthorID:     body.AuthorID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, commentToJSON(comment))
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.services.Comments.ListComments(
		r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("visibility"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]commentJSON, len(comments))
	for i, c := range comments {
		out[i] = commentToJSON(c)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Comments.DeleteComment(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

// --- work sessions ---

func (s *Server) startTimer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.services.WorkSessions.StartTimer(r.Context(), vars["ownerType"], vars["ownerID"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) stopTimer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var body struct {
		WorkType    string `json:"work_type"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	session, err := s.services.WorkSessions.StopTimer(
		r.Context(), vars["ownerType"], vars["ownerID"], body.WorkType, body.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if session == nil {
		// Zero elapsed time: nothing was recorded.
		s.writeJSON(w, http.StatusNoContent, nil)
		return
	}
	s.writeJSON(w, http.StatusCreated, workSessionToJSON(session))
}

func (s *Server) logSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OwnerType       string `json:"owner_type"`
		OwnerID         string `json:"owner_id"`
		DurationMinutes int    `json:"duration_minutes"`
		WorkType        string `json:"work_type"`
		Description     string `json:"description"`
		SessionDate     string `json:"session_date"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeBadRequest(w, err)
		return
	}

	session, err := s.services.WorkSessions.LogSession(r.Context(), primary.LogSessionRequest{
		OwnerType:       body.OwnerType,
		OwnerID:         body.OwnerID,
		DurationMinutes: body.DurationMinutes,
		WorkType:        body.WorkType,
		Description:     body.Description,
		SessionDate:     body.SessionDate,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, workSessionToJSON(session))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessions, err := s.services.WorkSessions.ListSessions(r.Context(), primary.WorkSessionFilters{
		OwnerType: q.Get("owner_type"),
		OwnerID:   q.Get("owner_id"),
		Limit:     queryInt(r, "limit"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]workSessionJSON, len(sessions))
	for i, ws := range sessions {
		out[i] = workSessionToJSON(ws)
	}
	s.writeJSON(w, http.StatusOK, out)
}

// --- reports ---

func (s *Server) costReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.services.Reports.CostReport(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, costReportToJSON(report))
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
