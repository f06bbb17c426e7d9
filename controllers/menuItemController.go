package controllers

import (
	"context"
	"net/http"
	"time"

	"go-restaurant-operations/database"
	"go-restaurant-operations/helpers"
	"go-restaurant-operations/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menuItem")

// fetchActiveMenuItems returns the organization's active items among the
// requested ids. Inactive and foreign items simply stay absent; the intake
// resolver turns any miss into a rejection.
func fetchActiveMenuItems(ctx context.Context, organizationId string, menuItemIds []string) ([]models.MenuItem, *helpers.AppError) {
	cursor, err := menuItemCollection.Find(ctx, bson.M{
		"organization_id": organizationId,
		"menu_item_id":    bson.M{"$in": menuItemIds},
		"is_active":       true,
	})
	if err != nil {
		return nil, storageError(err)
	}
	var menuItems []models.MenuItem
	if err := cursor.All(ctx, &menuItems); err != nil {
		return nil, storageError(err)
	}
	return menuItems, nil
}

func GetMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		filter := bson.M{"organization_id": c.GetString("organization_id")}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}
		cursor, err := menuItemCollection.Find(ctx, filter)
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		var menuItems []models.MenuItem
		if err := cursor.All(ctx, &menuItems); err != nil {
			respondError(c, storageError(err))
			return
		}
		c.JSON(http.StatusOK, menuItems)
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanManageResources(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var menuItem models.MenuItem
		if err := c.BindJSON(&menuItem); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if err := validate.Struct(&menuItem); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		organizationId := c.GetString("organization_id")
		organization, appErr := getOrganization(ctx, organizationId)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		count, err := menuItemCollection.CountDocuments(ctx, bson.M{"organization_id": organizationId})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if !helpers.CheckLimit(organization.Plan, helpers.ResourceMenuItems, count) {
			respondError(c, helpers.QuotaError(helpers.ResourceMenuItems))
			return
		}

		active := true
		if menuItem.Is_active != nil {
			active = *menuItem.Is_active
		}
		menuItem.ID = primitive.NewObjectID()
		menuItem.Menu_item_id = menuItem.ID.Hex()
		menuItem.Organization_id = organizationId
		menuItem.Is_active = &active
		menuItem.Created_at = time.Now().UTC()
		menuItem.Updated_at = menuItem.Created_at

		if _, err := menuItemCollection.InsertOne(ctx, menuItem); err != nil {
			respondError(c, storageError(err))
			return
		}
		c.JSON(http.StatusCreated, menuItem)
	}
}

// UpdateMenuItem edits name, category, price or the active flag. Price edits
// never reach already-created order lines; those hold their own snapshot.
func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanManageResources(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var menuItem models.MenuItem
		if err := c.BindJSON(&menuItem); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		var updateObj primitive.D
		if menuItem.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: menuItem.Name})
		}
		if menuItem.Category != nil {
			updateObj = append(updateObj, bson.E{Key: "category", Value: menuItem.Category})
		}
		if menuItem.Price != nil {
			updateObj = append(updateObj, bson.E{Key: "price", Value: menuItem.Price})
		}
		if menuItem.Is_active != nil {
			updateObj = append(updateObj, bson.E{Key: "is_active", Value: menuItem.Is_active})
		}
		if len(updateObj) == 0 {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, "nothing to update"))
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now().UTC()})

		result, err := menuItemCollection.UpdateOne(
			ctx,
			bson.M{"menu_item_id": c.Param("menu_item_id"), "organization_id": c.GetString("organization_id")},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if result.MatchedCount == 0 {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "menu item was not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"matched_count": result.MatchedCount, "modified_count": result.ModifiedCount})
	}
}

// DeleteMenuItem removes an item from the menu and detaches existing order
// lines from it; their snapshotted name and price stay untouched.
func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanManageResources(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		menuItemId := c.Param("menu_item_id")
		result, err := menuItemCollection.DeleteOne(ctx, bson.M{
			"menu_item_id":    menuItemId,
			"organization_id": c.GetString("organization_id"),
		})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if result.DeletedCount == 0 {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "menu item was not found"))
			return
		}
		if _, err := orderItemCollection.UpdateMany(
			ctx,
			bson.M{"menu_item_id": menuItemId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "menu_item_id", Value: nil}}}},
		); err != nil {
			respondError(c, storageError(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted_count": result.DeletedCount})
	}
}
