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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(providedPassword string, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
	return err == nil
}

// SignUp bootstraps a tenant: a new organization on the FREE tier together
// with its first user, an ADMIN. Additional seats come through CreateUser.
func SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var req struct {
			Organization_name string      `json:"organization_name" validate:"required,min=2,max=100"`
			User              models.User `json:"user"`
		}
		if err := c.BindJSON(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		adminRole := helpers.RoleAdmin
		req.User.User_role = &adminRole
		if err := validate.Struct(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if err := validate.Struct(&req.User); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.User.Email})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if count > 0 {
			respondError(c, helpers.NewAppError(helpers.ErrConflict, "email is already registered"))
			return
		}

		now := time.Now().UTC()
		organization := models.Organization{
			ID:         primitive.NewObjectID(),
			Name:       &req.Organization_name,
			Plan:       models.PlanFree,
			Created_at: now,
			Updated_at: now,
		}
		organization.Organization_id = organization.ID.Hex()

		password, err := HashPassword(*req.User.Password)
		if err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrInternal, "could not hash password"))
			return
		}
		user := req.User
		user.Password = &password
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()
		user.Organization_id = organization.Organization_id
		user.Created_at = now
		user.Updated_at = now

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.Name, user.User_id, user.Organization_id, *user.User_role)
		if err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrInternal, "could not generate tokens"))
			return
		}
		user.Token = &token
		user.Refresh_Token = &refreshToken

		// one unit: a lost race on the email index must not leave an orphan
		// organization behind
		session, err := database.Client.StartSession()
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		defer session.EndSession(ctx)
		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if _, err := organizationCollection.InsertOne(sc, organization); err != nil {
				return nil, err
			}
			if _, err := userCollection.InsertOne(sc, user); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, helpers.NewAppError(helpers.ErrConflict, "email is already registered"))
				return
			}
			respondError(c, storageError(err))
			return
		}

		user.Password = nil
		c.JSON(http.StatusCreated, gin.H{"organization": organization, "user": user})
	}
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var req struct {
			Email    *string `json:"email" validate:"required,email"`
			Password *string `json:"password" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(c, helpers.NewAppError(helpers.ErrPermission, "email or password is incorrect"))
			return
		}
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if !VerifyPassword(*req.Password, *user.Password) {
			respondError(c, helpers.NewAppError(helpers.ErrPermission, "email or password is incorrect"))
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.Name, user.User_id, user.Organization_id, *user.User_role)
		if err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrInternal, "could not generate tokens"))
			return
		}
		if err := helpers.UpdateAllTokens(token, refreshToken, user.User_id); err != nil {
			respondError(c, storageError(err))
			return
		}

		user.Token = &token
		user.Refresh_Token = &refreshToken
		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

// CreateUser adds a staff seat to the caller's organization, gated by the
// staffSeats quota.
func CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if !helpers.CanManageResources(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if err := validate.Struct(&user); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if user.User_role == nil || !helpers.ValidRole(*user.User_role) {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, "unknown user role"))
			return
		}

		organizationId := c.GetString("organization_id")
		organization, appErr := getOrganization(ctx, organizationId)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		count, err := userCollection.CountDocuments(ctx, bson.M{"organization_id": organizationId})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if !helpers.CheckLimit(organization.Plan, helpers.ResourceStaffSeats, count) {
			respondError(c, helpers.QuotaError(helpers.ResourceStaffSeats))
			return
		}

		password, err := HashPassword(*user.Password)
		if err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrInternal, "could not hash password"))
			return
		}
		now := time.Now().UTC()
		user.Password = &password
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()
		user.Organization_id = organizationId
		user.Created_at = now
		user.Updated_at = now

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, helpers.NewAppError(helpers.ErrConflict, "email is already registered"))
				return
			}
			respondError(c, storageError(err))
			return
		}

		user.Password = nil
		c.JSON(http.StatusCreated, user)
	}
}

func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cursor, err := userCollection.Find(ctx, bson.M{"organization_id": c.GetString("organization_id")})
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			respondError(c, storageError(err))
			return
		}
		for i := range users {
			users[i].Password = nil
			users[i].Token = nil
			users[i].Refresh_Token = nil
		}
		c.JSON(http.StatusOK, users)
	}
}

func GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{
			"user_id":         c.Param("user_id"),
			"organization_id": c.GetString("organization_id"),
		}).Decode(&user)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "user was not found"))
			return
		}
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		user.Password = nil
		user.Token = nil
		user.Refresh_Token = nil
		c.JSON(http.StatusOK, user)
	}
}
