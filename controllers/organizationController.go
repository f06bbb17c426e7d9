package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-restaurant-operations/database"
	"go-restaurant-operations/helpers"
	"go-restaurant-operations/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var organizationCollection *mongo.Collection = database.OpenCollection(database.Client, "organization")

func getOrganization(ctx context.Context, organizationId string) (*models.Organization, *helpers.AppError) {
	var organization models.Organization
	err := organizationCollection.FindOne(ctx, bson.M{"organization_id": organizationId}).Decode(&organization)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, helpers.NewAppError(helpers.ErrNotFound, "organization was not found")
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &organization, nil
}

func GetOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		organization, appErr := getOrganization(ctx, c.GetString("organization_id"))
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		c.JSON(http.StatusOK, organization)
	}
}

// UpdateOrganizationPlan switches the plan tier. The quota engine reads the
// tier freshly on every gated write, so the change takes effect immediately.
func UpdateOrganizationPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanManagePlan(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var req struct {
			Plan models.PlanTier `json:"plan" validate:"required,eq=FREE|eq=PREMIUM"`
		}
		if err := c.BindJSON(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		organizationId := c.GetString("organization_id")
		result, err := organizationCollection.UpdateOne(
			ctx,
			bson.M{"organization_id": organizationId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "plan", Value: req.Plan},
				{Key: "updated_at", Value: time.Now().UTC()},
			}}},
		)
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if result.MatchedCount == 0 {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "organization was not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"organization_id": organizationId, "plan": req.Plan})
	}
}
