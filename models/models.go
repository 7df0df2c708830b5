package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User represents an authenticated app user (admin or kasir).
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	DisplayName  string    `bun:"display_name"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID        string    `bun:"id,pk"`
	UserID    int64     `bun:"user_id,notnull"`
	User      User      `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles []string  `bun:"-"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Product is a sellable item. Price and CostPrice are whole rupiah.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Code      string    `bun:"code,unique,notnull"`
	Name      string    `bun:"name,notnull"`
	Price     int64     `bun:"price,notnull,default:0"`
	CostPrice int64     `bun:"cost_price,notnull,default:0"`
	Stock     int64     `bun:"stock,notnull,default:0"`
	Status    string    `bun:"status,notnull,default:'active'"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Transaction is a completed checkout.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID            int64     `bun:"id,pk,autoincrement"`
	TrxNo         string    `bun:"trx_no,unique,notnull"`
	Cashier       string    `bun:"cashier,notnull"`
	PaymentMethod string    `bun:"payment_method,notnull,default:'cash'"`
	Total         int64     `bun:"total,notnull,default:0"`
	Paid          int64     `bun:"paid,notnull,default:0"`
	Change        int64     `bun:"change,notnull,default:0"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Items []TransactionItem `bun:"rel:has-many,join:id=transaction_id"`
}

// TransactionItem is one cart line frozen at checkout time.
type TransactionItem struct {
	bun.BaseModel `bun:"table:transaction_items,alias:ti"`

	ID            int64  `bun:"id,pk,autoincrement"`
	TransactionID int64  `bun:"transaction_id,notnull"`
	ProductCode   string `bun:"product_code,notnull"`
	ProductName   string `bun:"product_name,notnull"`
	Price         int64  `bun:"price,notnull,default:0"`
	CostPrice     int64  `bun:"cost_price,notnull,default:0"`
	Qty           int64  `bun:"qty,notnull,default:1"`
	Subtotal      int64  `bun:"subtotal,notnull,default:0"`
}

// StockUpdate records a stock increase and the expense it caused.
type StockUpdate struct {
	bun.BaseModel `bun:"table:stock_updates,alias:su"`

	ID          int64     `bun:"id,pk,autoincrement"`
	ProductID   int64     `bun:"product_id,notnull"`
	ProductCode string    `bun:"product_code,notnull"`
	ProductName string    `bun:"product_name,notnull"`
	OldStock    int64     `bun:"old_stock,notnull,default:0"`
	NewStock    int64     `bun:"new_stock,notnull,default:0"`
	StockAdded  int64     `bun:"stock_added,notnull,default:0"`
	CostPrice   int64     `bun:"cost_price,notnull,default:0"`
	Expense     int64     `bun:"total_pengeluaran,notnull,default:0"`
	UpdatedBy   string    `bun:"updated_by"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Setting is the single store profile row.
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:st"`

	ID           int64  `bun:"id,pk,autoincrement"`
	StoreName    string `bun:"store_name,notnull,default:'Nama Toko Anda'"`
	StoreAddress string `bun:"store_address,notnull,default:'Alamat Toko Anda'"`
	StorePhone   string `bun:"store_phone,notnull,default:''"`
	Timezone     string `bun:"timezone,notnull,default:'WIB'"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
