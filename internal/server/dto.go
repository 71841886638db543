package server

import "github.com/example/studiodesk/internal/ports/primary"

// JSON shapes for the dashboard API. Counter owners expose their full
// denormalized counter block so the frontend can render without follow-up
// fetches.

type clientJSON struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Status            string `json:"status"`
	CurrentPackageID  string `json:"current_package_id"`
	RemainingServings int    `json:"remaining_servings"`
	RemainingImages   int    `json:"remaining_images"`
	ConsumedImages    int    `json:"consumed_images"`
	ReservedImages    int    `json:"reserved_images"`
	AITrainingUnits   int    `json:"ai_training_units"`
	Notes             string `json:"notes"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func clientToJSON(c *primary.Client) clientJSON {
	return clientJSON{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Status:            c.Status,
		CurrentPackageID:  c.CurrentPackageID,
		RemainingServings: c.RemainingServings,
		RemainingImages:   c.RemainingImages,
		ConsumedImages:    c.ConsumedImages,
		ReservedImages:    c.ReservedImages,
		AITrainingUnits:   c.AITrainingUnits,
		Notes:             c.Notes,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func clientsToJSON(clients []*primary.Client) []clientJSON {
	out := make([]clientJSON, len(clients))
	for i, c := range clients {
		out[i] = clientToJSON(c)
	}
	return out
}

type affiliateJSON struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	CommissionPercent int    `json:"commission_percent"`
	CurrentPackageID  string `json:"current_package_id"`
	RemainingServings int    `json:"remaining_servings"`
	RemainingImages   int    `json:"remaining_images"`
	ConsumedImages    int    `json:"consumed_images"`
	ReservedImages    int    `json:"reserved_images"`
	AITrainingUnits   int    `json:"ai_training_units"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func affiliateToJSON(a *primary.Affiliate) affiliateJSON {
	return affiliateJSON{
		ID:                a.ID,
		Name:              a.Name,
		Email:             a.Email,
		Phone:             a.Phone,
		CommissionPercent: a.CommissionPercent,
		CurrentPackageID:  a.CurrentPackageID,
		RemainingServings: a.RemainingServings,
		RemainingImages:   a.RemainingImages,
		ConsumedImages:    a.ConsumedImages,
		ReservedImages:    a.ReservedImages,
		AITrainingUnits:   a.AITrainingUnits,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func affiliatesToJSON(affiliates []*primary.Affiliate) []affiliateJSON {
	out := make([]affiliateJSON, len(affiliates))
	for i, a := range affiliates {
		out[i] = affiliateToJSON(a)
	}
	return out
}

type leadJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func leadToJSON(l *primary.Lead) leadJSON {
	return leadJSON{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Source:    l.Source,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

type packageJSON struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	TotalServings         int      `json:"total_servings"`
	TotalImages           int      `json:"total_images"`
	Price                 float64  `json:"price"`
	IsActive              bool     `json:"is_active"`
	MaxEditsPerServing    int      `json:"max_edits_per_serving"`
	MaxProcessingTimeDays int      `json:"max_processing_time_days"`
	FeaturesTags          []string `json:"features_tags"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

func packageToJSON(p *primary.Package) packageJSON {
	tags := p.FeaturesTags
	if tags == nil {
		tags = []string{}
	}
	return packageJSON{
		ID:                    p.ID,
		Name:                  p.Name,
		Description:           p.Description,
		TotalServings:         p.TotalServings,
		TotalImages:           p.TotalImages,
		Price:                 p.Price,
		IsActive:              p.IsActive,
		MaxEditsPerServing:    p.MaxEditsPerServing,
		MaxProcessingTimeDays: p.MaxProcessingTimeDays,
		FeaturesTags:          tags,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

type submissionJSON struct {
	ID                 string   `json:"id"`
	OwnerType          string   `json:"owner_type"`
	OwnerID            string   `json:"owner_id"`
	ItemName           string   `json:"item_name"`
	ItemType           string   `json:"item_type"`
	Ingredients        string   `json:"ingredients"`
	Category           string   `json:"category"`
	Status             string   `json:"status"`
	OriginalImageURLs  []string `json:"original_image_urls"`
	ProcessedImageURLs []string `json:"processed_image_urls"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func submissionToJSON(sub *primary.Submission) submissionJSON {
	originals := sub.OriginalImageURLs
	if originals == nil {
		originals = []string{}
	}
	processed := sub.ProcessedImageURLs
	if processed == nil {
		processed = []string{}
	}
	return submissionJSON{
		ID:                 sub.ID,
		OwnerType:          sub.OwnerType,
		OwnerID:            sub.OwnerID,
		ItemName:           sub.ItemName,
		ItemType:           sub.ItemType,
		Ingredients:        sub.Ingredients,
		Category:           sub.Category,
		Status:             sub.Status,
		OriginalImageURLs:  originals,
		ProcessedImageURLs: processed,
		CreatedAt:          sub.CreatedAt,
		UpdatedAt:          sub.UpdatedAt,
	}
}

type commentJSON struct {
	ID           string `json:"id"`
	SubmissionID string `json:"submission_id"`
	Type         string `json:"type"`
	Visibility   string `json:"visibility"`
	Content      string `json:"content"`
	AuthorID     string `json:"author_id"`
	CreatedAt    string `json:"created_at"`
}

func commentToJSON(c *primary.Comment) commentJSON {
	return commentJSON{
		ID:           c.ID,
		SubmissionID: c.SubmissionID,
		Type:         c.Type,
		Visibility:   c.Visibility,
		Content:      c.Content,
		AuthorID:     c.AuthorID,
		CreatedAt:    c.CreatedAt,
	}
}

type workSessionJSON struct {
	ID              string `json:"id"`
	OwnerType       string `json:"owner_type"`
	OwnerID         string `json:"owner_id"`
	DurationMinutes int    `json:"duration_minutes"`
	WorkType        string `json:"work_type"`
	Description     string `json:"description"`
	SessionDate     string `json:"session_date"`
	CreatedAt       string `json:"created_at"`
}

func workSessionToJSON(ws *primary.WorkSession) workSessionJSON {
	return workSessionJSON{
		ID:              ws.ID,
		OwnerType:       ws.OwnerType,
		OwnerID:         ws.OwnerID,
		DurationMinutes: ws.DurationMinutes,
		WorkType:        ws.WorkType,
		Description:     ws.Description,
		SessionDate:     ws.SessionDate,
		CreatedAt:       ws.CreatedAt,
	}
}

type costReportJSON struct {
	GeneratedAt        string              `json:"generated_at"`
	TotalTrainingUnits int                 `json:"total_training_units"`
	TotalPackageValue  float64             `json:"total_package_value"`
	Rows               []costReportRowJSON `json:"rows"`
}

type costReportRowJSON struct {
	OwnerType     string  `json:"owner_type"`
	OwnerID       string  `json:"owner_id"`
	Name          string  `json:"name"`
	TrainingUnits int     `json:"training_units"`
	PackageID     string  `json:"package_id"`
	PackagePrice  float64 `json:"package_price"`
}

func costReportToJSON(r *primary.CostReport) costReportJSON {
	rows := make([]costReportRowJSON, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = costReportRowJSON{
			OwnerType:     row.OwnerType,
			OwnerID:       row.OwnerID,
			Name:          row.Name,
			TrainingUnits: row.TrainingUnits,
			PackageID:     row.PackageID,
			PackagePrice:  row.PackagePrice,
		}
	}
	return costReportJSON{
		GeneratedAt:        r.GeneratedAt,
		TotalTrainingUnits: r.TotalTrainingUnits,
		TotalPackageValue:  r.TotalPackageValue,
		Rows:               rows,
	}
}
