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
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")
var orderItemCollection *mongo.Collection = database.OpenCollection(database.Client, "orderItem")
var paymentCollection *mongo.Collection = database.OpenCollection(database.Client, "payment")

var orgLocks = helpers.NewOrgLocker()

// CreateOrder is the staff intake channel. The acting user's organization and
// role come from the verified token, never from the payload.
func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var req models.CreateOrderRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}

		role := c.GetString("user_role")
		createdBy := c.GetString("uid")
		order, items, appErr := placeOrder(ctx, c.GetString("organization_id"), &role, &createdBy, req)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		c.JSON(http.StatusCreated, orderResponse(ctx, *order, items))
	}
}

// CreatePublicOrder is the unauthenticated intake channel, identified by the
// table's access token. auto_accept is never honored here and the table must
// be enabled.
func CreatePublicOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// payload shape is the first failure mode, ahead of table resolution
		var req models.CreateOrderRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if appErr := validateOrderRequest(req); appErr != nil {
			respondError(c, appErr)
			return
		}

		table, appErr := getTableByToken(ctx, c.Param("access_token"))
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		if appErr := tableAvailable(table, true); appErr != nil {
			respondError(c, appErr)
			return
		}
		// the token decides the table and the channel allows no fast path
		req.Table_id = &table.Table_id
		req.Auto_accept = false

		order, items, appErr := placeOrder(ctx, table.Organization_id, nil, nil, req)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		c.JSON(http.StatusCreated, orderResponse(ctx, *order, items))
	}
}

// placeOrder runs the intake sequence: payload shape, table ownership, menu
// snapshot, monthly quota, role (staff only), then numbering and the atomic
// order+items insert. actorRole is nil on the public channel.
func placeOrder(ctx context.Context, organizationId string, actorRole *string, createdBy *string, req models.CreateOrderRequest) (*models.Order, []models.OrderItem, *helpers.AppError) {
	if appErr := validateOrderRequest(req); appErr != nil {
		return nil, nil, appErr
	}

	if req.Table_id != nil {
		table, appErr := getTableByID(ctx, organizationId, *req.Table_id)
		if appErr != nil {
			return nil, nil, appErr
		}
		if appErr := tableAvailable(table, actorRole == nil); appErr != nil {
			return nil, nil, appErr
		}
	}

	menuItems, appErr := fetchActiveMenuItems(ctx, organizationId, distinctMenuItemIDs(req.Items))
	if appErr != nil {
		return nil, nil, appErr
	}
	items, total, appErr := resolveOrderItems(req.Items, menuItems)
	if appErr != nil {
		return nil, nil, appErr
	}

	// Numbering and the quota count are check-then-act sequences; the org
	// lock serializes both for this process and the unique index on
	// (organization_id, order_number) backs the numbering across processes.
	unlock := orgLocks.Lock(organizationId)
	defer unlock()

	organization, appErr := getOrganization(ctx, organizationId)
	if appErr != nil {
		return nil, nil, appErr
	}
	monthlyCount, err := orderCollection.CountDocuments(ctx, bson.M{
		"organization_id": organizationId,
		"created_at":      bson.M{"$gte": monthStart(time.Now())},
	})
	if err != nil {
		return nil, nil, storageError(err)
	}
	if !helpers.CheckLimit(organization.Plan, helpers.ResourceMonthlyOrders, monthlyCount) {
		return nil, nil, helpers.QuotaError(helpers.ResourceMonthlyOrders)
	}

	status := models.StatusPlaced
	if actorRole != nil {
		if !helpers.CanCreateOrders(*actorRole) {
			return nil, nil, helpers.PermissionError()
		}
		if req.Auto_accept {
			status = models.StatusAccepted
		}
	}

	for attempt := 0; attempt < 2; attempt++ {
		number, appErr := nextOrderNumber(ctx, organizationId)
		if appErr != nil {
			return nil, nil, appErr
		}

		now := time.Now().UTC()
		order := models.Order{
			ID:              primitive.NewObjectID(),
			Organization_id: organizationId,
			Order_number:    number,
			Table_id:        req.Table_id,
			Status:          status,
			Total:           total,
			Notes:           req.Notes,
			Created_by:      createdBy,
			Created_at:      now,
			Updated_at:      now,
		}
		order.Order_id = order.ID.Hex()
		for i := range items {
			items[i].Order_id = order.Order_id
		}

		err := insertOrderWithItems(ctx, order, items)
		if err == nil {
			return &order, items, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, nil, storageError(err)
		}
		// another writer took this number; re-run the read-increment-write once
	}
	return nil, nil, helpers.NewAppError(helpers.ErrInternal, "could not allocate an order number")
}

// nextOrderNumber reads the organization's current maximum and adds one.
// Correctness rests on the caller holding the org lock and on the unique
// index, not on this arithmetic.
func nextOrderNumber(ctx context.Context, organizationId string) (int64, *helpers.AppError) {
	var last models.Order
	err := orderCollection.FindOne(
		ctx,
		bson.M{"organization_id": organizationId},
		options.FindOne().SetSort(bson.D{{Key: "order_number", Value: -1}}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, storageError(err)
	}
	return last.Order_number + 1, nil
}

// insertOrderWithItems commits the order and all its lines as one unit;
// readers never observe a partial order. Requires mongod running as a
// replica set, which is what server-side transactions need.
func insertOrderWithItems(ctx context.Context, order models.Order, items []models.OrderItem) error {
	session, err := database.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := orderCollection.InsertOne(sc, order); err != nil {
			return nil, err
		}
		docs := make([]interface{}, 0, len(items))
		for _, item := range items {
			docs = append(docs, item)
		}
		if _, err := orderItemCollection.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetOrders is the staff read side of the polling contract: newest-first
// orders under optional status filters plus aggregate metrics. It never
// mutates anything.
func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		organizationId := c.GetString("organization_id")

		filter := bson.M{"organization_id": organizationId}
		if statuses := c.QueryArray("status"); len(statuses) > 0 {
			for _, s := range statuses {
				if !models.ValidOrderStatus(models.OrderStatus(s)) {
					respondError(c, helpers.NewAppError(helpers.ErrValidation, "unknown status filter %s", s))
					return
				}
			}
			filter["status"] = bson.M{"$in": statuses}
		}
		limit := clampLimit(c.Query("limit"), 50, 100)

		orders, appErr := findOrders(ctx, filter, limit)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		itemsByOrder, appErr := fetchOrderItems(ctx, orderIDs(orders))
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		metrics, appErr := orderMetrics(ctx, organizationId)
		if appErr != nil {
			respondError(c, appErr)
			return
		}

		payload := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			payload = append(payload, orderSummary(order, itemsByOrder[order.Order_id]))
		}
		c.JSON(http.StatusOK, gin.H{"orders": payload, "metrics": metrics})
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{
			"order_id":        c.Param("order_id"),
			"organization_id": c.GetString("organization_id"),
		}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "order was not found"))
			return
		}
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		itemsByOrder, appErr := fetchOrderItems(ctx, []string{order.Order_id})
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		c.JSON(http.StatusOK, orderSummary(order, itemsByOrder[order.Order_id]))
	}
}

// GetPublicOrders lists a table's own recent orders by access token, with a
// derived paid flag per order. Disabled tables may still watch their
// in-flight orders; only new intake is blocked.
func GetPublicOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		table, appErr := getTableByToken(ctx, c.Param("access_token"))
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		limit := clampLimit(c.Query("limit"), 10, 20)

		orders, appErr := findOrders(ctx, bson.M{
			"organization_id": table.Organization_id,
			"table_id":        table.Table_id,
		}, limit)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		ids := orderIDs(orders)
		itemsByOrder, appErr := fetchOrderItems(ctx, ids)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		paid, appErr := paidOrders(ctx, ids)
		if appErr != nil {
			respondError(c, appErr)
			return
		}

		payload := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			summary := orderSummary(order, itemsByOrder[order.Order_id])
			summary["paid"] = paid[order.Order_id]
			payload = append(payload, summary)
		}
		c.JSON(http.StatusOK, gin.H{
			"table_number": table.Table_number,
			"orders":       payload,
		})
	}
}

// UpdateOrderStatus applies one staff-triggered transition. The update is
// conditional on the status the transition was validated against, so two
// staff clients racing on the same order cannot lose an update: the second
// one re-validates against the fresh status and is rejected if the edge is no
// longer legal.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if !helpers.CanTransitionOrders(c.GetString("user_role")) {
			respondError(c, helpers.PermissionError())
			return
		}

		var req struct {
			Status models.OrderStatus `json:"status"`
		}
		if err := c.BindJSON(&req); err != nil {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, err.Error()))
			return
		}
		if !models.ValidOrderStatus(req.Status) {
			respondError(c, helpers.NewAppError(helpers.ErrValidation, "unknown status %s", req.Status))
			return
		}

		organizationId := c.GetString("organization_id")
		orderId := c.Param("order_id")

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{
			"order_id":        orderId,
			"organization_id": organizationId,
		}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(c, helpers.NewAppError(helpers.ErrNotFound, "order was not found"))
			return
		}
		if err != nil {
			respondError(c, storageError(err))
			return
		}

		if !models.CanTransition(order.Status, req.Status) {
			respondError(c, transitionError(order.Status, req.Status))
			return
		}

		now := time.Now().UTC()
		result, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId, "organization_id": organizationId, "status": order.Status},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "status", Value: req.Status},
				{Key: "updated_at", Value: now},
			}}},
		)
		if err != nil {
			respondError(c, storageError(err))
			return
		}
		if result.MatchedCount == 0 {
			// a concurrent transition got there first; re-validate against
			// the now-current status
			if err := orderCollection.FindOne(ctx, bson.M{
				"order_id":        orderId,
				"organization_id": organizationId,
			}).Decode(&order); err != nil {
				respondError(c, storageError(err))
				return
			}
			respondError(c, transitionError(order.Status, req.Status))
			return
		}

		order.Status = req.Status
		order.Updated_at = now
		itemsByOrder, appErr := fetchOrderItems(ctx, []string{order.Order_id})
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		c.JSON(http.StatusOK, orderSummary(order, itemsByOrder[order.Order_id]))
	}
}

func transitionError(current, requested models.OrderStatus) *helpers.AppError {
	return helpers.NewAppError(helpers.ErrTransition, "cannot transition order from %s to %s", current, requested)
}

func findOrders(ctx context.Context, filter bson.M, limit int64) ([]models.Order, *helpers.AppError) {
	cursor, err := orderCollection.Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, storageError(err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storageError(err)
	}
	return orders, nil
}

func orderIDs(orders []models.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.Order_id)
	}
	return ids
}

func fetchOrderItems(ctx context.Context, orderIds []string) (map[string][]models.OrderItem, *helpers.AppError) {
	grouped := make(map[string][]models.OrderItem, len(orderIds))
	if len(orderIds) == 0 {
		return grouped, nil
	}
	cursor, err := orderItemCollection.Find(ctx, bson.M{"order_id": bson.M{"$in": orderIds}})
	if err != nil {
		return nil, storageError(err)
	}
	var items []models.OrderItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, storageError(err)
	}
	for _, item := range items {
		grouped[item.Order_id] = append(grouped[item.Order_id], item)
	}
	return grouped, nil
}

// paidOrders reports which of the given orders have at least one payment
// marked PAID. Payment state itself is managed outside this core.
func paidOrders(ctx context.Context, orderIds []string) (map[string]bool, *helpers.AppError) {
	paid := make(map[string]bool, len(orderIds))
	if len(orderIds) == 0 {
		return paid, nil
	}
	cursor, err := paymentCollection.Find(ctx, bson.M{
		"order_id": bson.M{"$in": orderIds},
		"status":   models.PaymentStatusPaid,
	})
	if err != nil {
		return nil, storageError(err)
	}
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, storageError(err)
	}
	for _, payment := range payments {
		paid[payment.Order_id] = true
	}
	return paid, nil
}

// orderMetrics aggregates counts per status, the active-order count and
// cumulative served revenue for one organization.
func orderMetrics(ctx context.Context, organizationId string) (gin.H, *helpers.AppError) {
	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "organization_id", Value: organizationId}}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$status"},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
	}}}

	cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
	if err != nil {
		return nil, storageError(err)
	}
	var rows []struct {
		Status  models.OrderStatus `bson:"_id"`
		Count   int64              `bson:"count"`
		Revenue int64              `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storageError(err)
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	var active int64
	var servedRevenue int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		if !models.IsTerminalStatus(row.Status) {
			active += row.Count
		}
		if row.Status == models.StatusServed {
			servedRevenue = row.Revenue
		}
	}
	return gin.H{
		"status_counts":          counts,
		"active_orders":          active,
		"served_revenue":         servedRevenue,
		"served_revenue_display": models.FormatAmount(servedRevenue),
	}, nil
}

func orderSummary(order models.Order, items []models.OrderItem) gin.H {
	lines := make([]gin.H, 0, len(items))
	for _, item := range items {
		lines = append(lines, gin.H{
			"order_item_id":      item.Order_item_id,
			"menu_item_id":       item.Menu_item_id,
			"name":               item.Name,
			"unit_price":         item.Unit_price,
			"unit_price_display": models.FormatAmount(item.Unit_price),
			"quantity":           item.Quantity,
			"total":              item.Total,
			"total_display":      models.FormatAmount(item.Total),
			"notes":              item.Notes,
		})
	}
	return gin.H{
		"order_id":      order.Order_id,
		"order_number":  order.Order_number,
		"table_id":      order.Table_id,
		"status":        order.Status,
		"total":         order.Total,
		"total_display": models.FormatAmount(order.Total),
		"notes":         order.Notes,
		"created_by":    order.Created_by,
		"created_at":    order.Created_at,
		"updated_at":    order.Updated_at,
		"items":         lines,
	}
}

// orderResponse decorates a freshly created order with its table summary.
func orderResponse(ctx context.Context, order models.Order, items []models.OrderItem) gin.H {
	payload := orderSummary(order, items)
	if order.Table_id != nil {
		if table, appErr := getTableByID(ctx, order.Organization_id, *order.Table_id); appErr == nil {
			payload["table"] = gin.H{"table_id": table.Table_id, "table_number": table.Table_number}
		}
	}
	return payload
}
