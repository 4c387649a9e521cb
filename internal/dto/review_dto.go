package dto

import "github.com/elitestore/storefront/internal/models"

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

type ReviewListResponse struct {
	Reviews    []models.Review `json:"reviews"`
	Pagination Pagination      `json:"pagination"`
}
