package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound     = "user not found"
	errProductNotFound  = "product not found"
	errCategoryNotFound = "category not found"
	errTagNotFound      = "tag not found"
	errOrderNotFound    = "order not found"
	errInvoiceNotFound  = "invoice not found"
	errAddressNotFound  = "delivery address not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedStartTransactionFmt     = "failed to start transaction: %w"
	errFailedCommitTransactionFmt    = "failed to commit transaction: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"
	errFailedUpdateUserFmt = "failed to update user: %w"

	errFailedCreateProductFmt = "failed to create product: %w"
	errFailedGetProductFmt    = "failed to get product: %w"
	errFailedListProductsFmt  = "failed to list products: %w"
	errFailedScanProductFmt   = "failed to scan product: %w"
	errFailedCountProductsFmt = "failed to count products: %w"
	errFailedUpdateProductFmt = "failed to update product: %w"
	errFailedDeleteProductFmt = "failed to delete product: %w"
	errFailedSetProductTagFmt = "failed to set product tags: %w"

	errFailedCreateCategoryFmt = "failed to create category: %w"
	errFailedListCategoriesFmt = "failed to list categories: %w"
	errFailedUpdateCategoryFmt = "failed to update category: %w"
	errFailedDeleteCategoryFmt = "failed to delete category: %w"

	errFailedCreateTagFmt = "failed to create tag: %w"
	errFailedListTagsFmt  = "failed to list tags: %w"
	errFailedDeleteTagFmt = "failed to delete tag: %w"

	errFailedListCartItemsFmt = "failed to list cart items: %w"
	errFailedScanCartItemFmt  = "failed to scan cart item: %w"
	errFailedClearCartFmt     = "failed to clear cart: %w"
	errFailedInsertCartFmt    = "failed to insert cart item: %w"

	errFailedCreateOrderFmt     = "failed to create order: %w"
	errFailedGetOrderFmt        = "failed to get order: %w"
	errFailedListOrdersFmt      = "failed to list orders: %w"
	errFailedScanOrderFmt       = "failed to scan order: %w"
	errFailedCountOrdersFmt     = "failed to count orders: %w"
	errFailedInsertOrderItemFmt = "failed to insert order item: %w"
	errFailedListOrderItemsFmt  = "failed to list order items: %w"
	errFailedCreateInvoiceFmt   = "failed to create invoice: %w"
	errFailedGetInvoiceFmt      = "failed to get invoice: %w"

	errFailedCreateAddressFmt = "failed to create delivery address: %w"
	errFailedGetAddressFmt    = "failed to get delivery address: %w"
	errFailedListAddressesFmt = "failed to list delivery addresses: %w"
	errFailedScanAddressFmt   = "failed to scan delivery address: %w"
	errFailedCountAddressFmt  = "failed to count delivery addresses: %w"
	errFailedUpdateAddressFmt = "failed to update delivery address: %w"
	errFailedDeleteAddressFmt = "failed to delete delivery address: %w"

	errFailedLoadResourceFmt = "failed to load resource: %w"
)

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf(errFailedParseDatabaseConfigFmt, err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf(errFailedCreateConnectionPoolFmt, err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf(errFailedPingDatabaseFmt, err)
}
