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
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var tableCollection *mongo.Collection = database.OpenCollection(database.Client, "table")

func getTableByID(ctx context.Context, organizationId string, tableId string) (*models.Table, *helpers.AppError) {
	var table models.Table
	err := tableCollection.FindOne(ctx, bson.M{
		"table_id":        tableId,
		"organization_id": organizationId,
	}).Decode(&table)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, helpers.NewAppError(helpers.ErrNotFound, "table was not found")
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &table, nil
}

func getTableByToken(ctx context.Context, accessToken string) (*models.Table, *helpers.AppError) {
	var table models.Table
	err := tableCollection.FindOne(ctx, bson.M{"access_token": accessToken}).Decode(&table)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, helpers.NewAppError(helpers.ErrNotFound, "table was not found")
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &table, nil
}

func GetTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cursor, err := tableCollection.Find(ctx, bson.M{"organization_id": c.GetString("organization_id")})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		var tables []models.Table
		if err := cursor.All(ctx, &tables); err != nil {
			respondError(c, storageError(err))
			return
		}
		c.JSON(http.StatusOK, tables)
	}
}

func GetTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		table, appErr := getTableByID(ctx, c.GetString("organization_id"), c.Param("table_id"))
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		c.JSON(http.StatusOK, table)
	}
}

// CreateTable mints the access token server-side; clients only ever choose
// the table number.
func CreateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanManageResources(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var table models.Table
		if err := c.BindJSON(&table); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if err := validate.Struct(&table); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		organizationId := c.GetString("organization_id")
		organization, appErr := getOrganization(ctx, organizationId)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		count, err := tableCollection.CountDocuments(ctx, bson.M{"organization_id": organizationId})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if !helpers.CheckLimit(organization.Plan, helpers.ResourceTables, count) {
			respondError(c, helpers.QuotaError(helpers.ResourceTables))
			return
		}

		enabled := true
		table.ID = primitive.NewObjectID()
		table.Table_id = table.ID.Hex()
		table.Organization_id = organizationId
		table.Access_token = uuid.NewString()
		table.Is_enabled = &enabled
		table.Created_at = time.Now().UTC()
		table.Updated_at = table.Created_at

		if _, err := tableCollection.InsertOne(ctx, table); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, helpers.NewAppError(helpers.ErrConflict, "table number %d already exists", *table.Table_number))
				return
			}
			respondError(c, storageError(err))
			return
		}
		c.JSON(http.StatusCreated, table)
	}
}

// UpdateTable changes the number or flips the enabled flag. Disabling a table
// only blocks new public intake; existing orders keep flowing.
func UpdateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanManageResources(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var table models.Table
		if err := c.BindJSON(&table); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		var updateObj primitive.D
		if table.Table_number != nil {
			updateObj = append(updateObj, bson.E{Key: "table_number", Value: table.Table_number})
		}
		if table.Is_enabled != nil {
			updateObj = append(updateObj, bson.E{Key: "is_enabled", Value: table.Is_enabled})
		}
		if len(updateObj) == 0 {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, "nothing to update"))
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now().UTC()})

		result, err := tableCollection.UpdateOne(
			ctx,
			bson.M{"table_id": c.Param("table_id"), "organization_id": c.GetString("organization_id")},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, helpers.NewAppError(helpers.ErrConflict, "table number already exists"))
				return
			}
			respondError(c, storageError(err))
			return
		}
		if result.MatchedCount == 0 {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "table was not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"matched_count": result.MatchedCount, "modified_count": result.ModifiedCount})
	}
}
