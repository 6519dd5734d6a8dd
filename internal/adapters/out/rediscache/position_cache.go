// Package rediscache keeps the latest courier position per order in Redis for tracking reads.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "tracking:order:"

// putScript writes the hash unless the stored entry is newer. updated_at is the server
// time of the accepted report in unix microseconds so it compares exactly as a Lua number.
var putScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'updated_at')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1],
	'delivery_id', ARGV[3],
	'order_id', ARGV[4],
	'status', ARGV[5],
	'latitude', ARGV[6],
	'longitude', ARGV[7],
	'updated_at', ARGV[1])
if tonumber(ARGV[2]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// PositionCache stores one hash per order. Entries expire after ttl; a zero ttl keeps
// them until overwritten.
type PositionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPositionCache(client *redis.Client, ttl time.Duration) *PositionCache {
	return &PositionCache{client: client, ttl: ttl}
}

// Connect opens a client and checks the server is reachable.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

func key(orderID kernel.UUID) string {
	return keyPrefix + orderID.String()
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseCoordinate(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Put stores position unless a newer one is already cached.
func (c *PositionCache) Put(ctx context.Context, position ports.CachedPosition) error {
	if err := position.OrderID.Validate(); err != nil {
		return err
	}

	err := putScript.Run(ctx, c.client, []string{key(position.OrderID)},
		position.UpdatedAt.UnixMicro(),
		c.ttl.Milliseconds(),
		position.DeliveryID.String(),
		position.OrderID.String(),
		position.Status,
		formatCoordinate(position.Latitude),
		formatCoordinate(position.Longitude),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to cache position of order %s: %w", position.OrderID, err)
	}
	return nil
}

func (c *PositionCache) Get(ctx context.Context, orderID kernel.UUID) (ports.CachedPosition, bool, error) {
	fields, err := c.client.HGetAll(ctx, key(orderID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.CachedPosition{}, false, nil
		}
		return ports.CachedPosition{}, false, err
	}
	if len(fields) == 0 {
		return ports.CachedPosition{}, false, nil
	}

	position, err := decode(fields)
	if err != nil {
		return ports.CachedPosition{}, false, fmt.Errorf("corrupt cached position for order %s: %w", orderID, err)
	}
	return position, true, nil
}

func decode(fields map[string]string) (ports.CachedPosition, error) {
	var (
		position ports.CachedPosition
		errs     []error
		err      error
	)

	position.DeliveryID, err = kernel.UUIDFromString(fields["delivery_id"])
	errs = append(errs, err)
	position.OrderID, err = kernel.UUIDFromString(fields["order_id"])
	errs = append(errs, err)
	position.Status = fields["status"]

	position.Latitude, err = parseCoordinate(fields["latitude"])
	errs = append(errs, err)
	position.Longitude, err = parseCoordinate(fields["longitude"])
	errs = append(errs, err)

	micros, err := strconv.ParseInt(fields["updated_at"], 10, 64)
	errs = append(errs, err)
	position.UpdatedAt = time.UnixMicro(micros).UTC()

	if err = errors.Join(errs...); err != nil {
		return ports.CachedPosition{}, err
	}
	return position, nil
}
