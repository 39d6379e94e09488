package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"festivo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ledger writes are conditional: every UpdateOne carries the occupancy
// assumption in its filter, so a write that raced a conflicting checkout
// matches zero documents and surfaces as ErrLedgerConflict instead of a
// double booking. The checkout engine additionally holds a per-service
// advisory lock; these filters are the backstop for anything that bypasses it.

func (r *MongoCatalogRepo) GetLedger(serviceID string) (*models.SlotLedger, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var doc struct {
		Ledger models.SlotLedger `bson:"slotLedger"`
	}
	opts := options.FindOne().SetProjection(bson.M{"slotLedger": 1})
	if err := r.coll.FindOne(ctx, bson.M{"id": serviceID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch ledger for service %s: %w", serviceID, err)
	}
	return &doc.Ledger, nil
}

func (r *MongoCatalogRepo) CommitFullDay(serviceID string, date models.Date, exclusive bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Flip an existing day record to full-day when its current entries permit it.
	dayCond := bson.M{"date": date, "fullDay": false}
	if exclusive {
		dayCond["intervals"] = bson.M{"$size": 0}
		dayCond["bookedCount"] = 0
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": serviceID, "slotLedger.days": bson.M{"$elemMatch": dayCond}},
		bson.M{"$set": bson.M{"slotLedger.days.$.fullDay": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to commit full-day booking: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No usable day record: append one, guarded against the date existing at all.
	res, err = r.coll.UpdateOne(ctx,
		bson.M{"id": serviceID, "slotLedger.days.date": bson.M{"$ne": date}},
		bson.M{"$push": bson.M{"slotLedger.days": models.DayLedger{
			Date:      date,
			FullDay:   true,
			Intervals: []models.HourInterval{},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to commit full-day booking: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.conflictOrMissing(ctx, serviceID)
}

func (r *MongoCatalogRepo) CommitHourly(serviceID string, date models.Date, iv models.HourInterval) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Append to an existing day record unless the date is fully booked or the
	// interval overlaps a confirmed one. Buffer conflicts are the resolver's
	// concern; this filter guards only the hard invariants.
	filter := bson.M{
		"id":                   serviceID,
		"slotLedger.days.date": date,
		"$nor": bson.A{
			bson.M{"slotLedger.days": bson.M{"$elemMatch": bson.M{"date": date, "fullDay": true}}},
			bson.M{"slotLedger.days": bson.M{"$elemMatch": bson.M{
				"date": date,
				"intervals": bson.M{"$elemMatch": bson.M{
					"startHour": bson.M{"$lt": iv.EndHour},
					"endHour":   bson.M{"$gt": iv.StartHour},
				}},
			}}},
		},
	}
	update := bson.M{"$push": bson.M{"slotLedger.days.$[d].intervals": iv}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"d.date": date}},
	})
	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to commit hourly booking: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"id": serviceID, "slotLedger.days.date": bson.M{"$ne": date}},
		bson.M{"$push": bson.M{"slotLedger.days": models.DayLedger{
			Date:      date,
			Intervals: []models.HourInterval{iv},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to commit hourly booking: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.conflictOrMissing(ctx, serviceID)
}

func (r *MongoCatalogRepo) CommitCapacity(serviceID string, date models.Date, people, maxCapacity int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dayCond := bson.M{"date": date, "fullDay": false}
	if maxCapacity > 0 {
		dayCond["bookedCount"] = bson.M{"$lte": maxCapacity - people}
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": serviceID, "slotLedger.days": bson.M{"$elemMatch": dayCond}},
		bson.M{"$inc": bson.M{"slotLedger.days.$.bookedCount": people}},
	)
	if err != nil {
		return fmt.Errorf("failed to commit capacity booking: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	if maxCapacity > 0 && people > maxCapacity {
		return ErrLedgerConflict
	}
	res, err = r.coll.UpdateOne(ctx,
		bson.M{"id": serviceID, "slotLedger.days.date": bson.M{"$ne": date}},
		bson.M{"$push": bson.M{"slotLedger.days": models.DayLedger{
			Date:        date,
			Intervals:   []models.HourInterval{},
			BookedCount: people,
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to commit capacity booking: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.conflictOrMissing(ctx, serviceID)
}

func (r *MongoCatalogRepo) ReleaseBooking(serviceID string, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	date := booking.BookingDate
	var err error
	switch {
	case booking.FullVenue || booking.BookingType == models.BookingTypeDaily:
		_, err = r.coll.UpdateOne(ctx,
			bson.M{"id": serviceID, "slotLedger.days": bson.M{"$elemMatch": bson.M{"date": date, "fullDay": true}}},
			bson.M{"$set": bson.M{"slotLedger.days.$.fullDay": false}},
		)
	case booking.StartHour != nil && booking.EndHour != nil:
		update := bson.M{"$pull": bson.M{"slotLedger.days.$[d].intervals": bson.M{
			"startHour": *booking.StartHour,
			"endHour":   *booking.EndHour,
		}}}
		opts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"d.date": date}},
		})
		_, err = r.coll.UpdateOne(ctx, bson.M{"id": serviceID}, update, opts)
	case booking.People != nil:
		_, err = r.coll.UpdateOne(ctx,
			bson.M{"id": serviceID, "slotLedger.days": bson.M{"$elemMatch": bson.M{"date": date, "bookedCount": bson.M{"$gte": *booking.People}}}},
			bson.M{"$inc": bson.M{"slotLedger.days.$.bookedCount": -*booking.People}},
		)
	default:
		return fmt.Errorf("booking %s has no releasable ledger entry", booking.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to release ledger entry for booking %s: %w", booking.ID, err)
	}

	// Drop day records left with no entries.
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"id": serviceID},
		bson.M{"$pull": bson.M{"slotLedger.days": bson.M{
			"date":        date,
			"fullDay":     false,
			"bookedCount": 0,
			"intervals":   bson.M{"$size": 0},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to compact ledger for service %s: %w", serviceID, err)
	}
	return nil
}

func (r *MongoCatalogRepo) conflictOrMissing(ctx context.Context, serviceID string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": serviceID})
	if err != nil {
		return fmt.Errorf("failed to verify service %s: %w", serviceID, err)
	}
	if count == 0 {
		return ErrServiceNotFound
	}
	return ErrLedgerConflict
}
