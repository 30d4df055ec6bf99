// internal/store/mongo.go
package store

import (
	"context"
	"time"

	"freightflow-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a Mongo database.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

// EnsureIndexes creates the unique indexes backing the one-row-per-key
// upsert semantics, plus the owner and event lookup indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	specs := map[string]mongo.IndexModel{
		"users":     {Keys: bson.D{{Key: "externalId", Value: 1}}, Options: unique},
		"quotes":    {Keys: bson.D{{Key: "quoteId", Value: 1}}, Options: unique},
		"bookings":  {Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: unique},
		"shipments": {Keys: bson.D{{Key: "shipmentId", Value: 1}}, Options: unique},
		"documents": {Keys: bson.D{{Key: "documentId", Value: 1}}, Options: unique},
		"geo_routes": {Keys: bson.D{{Key: "key", Value: 1}}, Options: unique},
	}
	for coll, model := range specs {
		if _, err := s.DB.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	owned := []string{"quotes", "bookings", "shipments", "documents"}
	for _, coll := range owned {
		model := mongo.IndexModel{Keys: bson.D{{Key: "userID", Value: 1}}}
		if _, err := s.DB.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	eventIdx := mongo.IndexModel{Keys: bson.D{{Key: "shipmentId", Value: 1}}}
	_, err := s.DB.Collection("tracking_events").Indexes().CreateOne(ctx, eventIdx)
	return err
}

// --- Users ---

func (s *MongoStore) InsertUser(ctx context.Context, user models.User) error {
	_, err := s.DB.Collection("users").InsertOne(ctx, user)
	return err
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection("users").FindOne(ctx, bson.M{"externalId": externalID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// --- Quotes ---

func (s *MongoStore) InsertQuote(ctx context.Context, quote models.Quote) error {
	_, err := s.DB.Collection("quotes").InsertOne(ctx, quote)
	return err
}

func (s *MongoStore) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	var quote models.Quote
	err := s.DB.Collection("quotes").FindOne(ctx, bson.M{"quoteId": quoteID}).Decode(&quote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (s *MongoStore) ListQuotesByUser(ctx context.Context, userID string) ([]models.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("quotes").Find(ctx, bson.M{"userID": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quotes []models.Quote
	if err = cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}
	return quotes, nil
}

// --- Bookings ---

func (s *MongoStore) InsertBooking(ctx context.Context, booking models.Booking) error {
	_, err := s.DB.Collection("bookings").InsertOne(ctx, booking)
	return err
}

func (s *MongoStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Collection("bookings").FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *MongoStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{})
}

func (s *MongoStore) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"userID": userID})
}

func (s *MongoStore) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("bookings").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *MongoStore) UpdateBookingStatus(ctx context.Context, bookingID, status, notes string) error {
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if notes != "" {
		set["notes"] = notes
	}
	result, err := s.DB.Collection("bookings").UpdateOne(ctx, bson.M{"bookingId": bookingID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Shipments ---

func (s *MongoStore) InsertShipment(ctx context.Context, shipment models.Shipment) error {
	_, err := s.DB.Collection("shipments").InsertOne(ctx, shipment)
	return err
}

func (s *MongoStore) GetShipment(ctx context.Context, shipmentID string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := s.DB.Collection("shipments").FindOne(ctx, bson.M{"shipmentId": shipmentID}).Decode(&shipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

func (s *MongoStore) UpdateShipmentTracking(ctx context.Context, shipment models.Shipment) error {
	// Owner and creation timestamp are deliberately absent from the $set.
	set := bson.M{
		"status":            shipment.Status,
		"currentLocation":   shipment.CurrentLocation,
		"estimatedDelivery": shipment.EstimatedDelivery,
		"carrier":           shipment.Carrier,
		"trackingNumber":    shipment.TrackingNumber,
		"service":           shipment.Service,
		"shipmentDetails":   shipment.ShipmentDetails,
		"lastUpdated":       shipment.LastUpdated,
	}
	result, err := s.DB.Collection("shipments").UpdateOne(ctx, bson.M{"shipmentId": shipment.ShipmentID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	return s.findShipments(ctx, bson.M{})
}

func (s *MongoStore) ListShipmentsByUser(ctx context.Context, userID string) ([]models.Shipment, error) {
	return s.findShipments(ctx, bson.M{"userID": userID})
}

func (s *MongoStore) findShipments(ctx context.Context, filter bson.M) ([]models.Shipment, error) {
	cursor, err := s.DB.Collection("shipments").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []models.Shipment
	if err = cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}
	return shipments, nil
}

func (s *MongoStore) AppendTrackingEvents(ctx context.Context, shipmentID string, events []models.TrackingEvent) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(events))
	for _, e := range events {
		e.ShipmentID = shipmentID
		docs = append(docs, e)
	}
	_, err := s.DB.Collection("tracking_events").InsertMany(ctx, docs)
	return err
}

func (s *MongoStore) ListTrackingEvents(ctx context.Context, shipmentID string) ([]models.TrackingEvent, error) {
	cursor, err := s.DB.Collection("tracking_events").Find(ctx, bson.M{"shipmentId": shipmentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.TrackingEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.TrackingEvent{}
	}
	return events, nil
}

// --- Documents ---

func (s *MongoStore) InsertDocument(ctx context.Context, doc models.Document) error {
	_, err := s.DB.Collection("documents").InsertOne(ctx, doc)
	return err
}

func (s *MongoStore) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	var doc models.Document
	err := s.DB.Collection("documents").FindOne(ctx, bson.M{"documentId": documentID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *MongoStore) ListDocumentsByUser(ctx context.Context, userID string) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("documents").Find(ctx, bson.M{"userID": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

func (s *MongoStore) SetDocumentEnvelope(ctx context.Context, documentID, docStatus string, env models.Envelope) error {
	set := bson.M{"docusign": env, "updatedAt": time.Now()}
	if docStatus != "" {
		set["status"] = docStatus
	}
	result, err := s.DB.Collection("documents").UpdateOne(ctx, bson.M{"documentId": documentID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Geo route cache ---

func (s *MongoStore) GetGeoRoute(ctx context.Context, key string) (*models.GeoRoute, error) {
	var route models.GeoRoute
	err := s.DB.Collection("geo_routes").FindOne(ctx, bson.M{"key": key}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

func (s *MongoStore) UpsertGeoRoute(ctx context.Context, route models.GeoRoute) error {
	set := bson.M{
		"origin":    route.Origin,
		"dest":      route.Dest,
		"profile":   route.Profile,
		"points":    route.Points,
		"distance":  route.Distance,
		"duration":  route.Duration,
		"updatedAt": route.UpdatedAt,
		"expiresAt": route.ExpiresAt,
	}
	setOnInsert := bson.M{"key": route.Key, "createdAt": route.CreatedAt}
	opts := options.Update().SetUpsert(true)
	_, err := s.DB.Collection("geo_routes").UpdateOne(ctx, bson.M{"key": route.Key},
		bson.M{"$set": set, "$setOnInsert": setOnInsert}, opts)
	return err
}

// --- Admin ---

func (s *MongoStore) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	var err error
	if counts.Quotes, err = s.DB.Collection("quotes").CountDocuments(ctx, bson.M{}); err != nil {
		return counts, err
	}
	if counts.Bookings, err = s.DB.Collection("bookings").CountDocuments(ctx, bson.M{}); err != nil {
		return counts, err
	}
	if counts.Shipments, err = s.DB.Collection("shipments").CountDocuments(ctx, bson.M{}); err != nil {
		return counts, err
	}
	counts.Documents, err = s.DB.Collection("documents").CountDocuments(ctx, bson.M{})
	return counts, err
}
