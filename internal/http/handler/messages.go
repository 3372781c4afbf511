package handler

const paramID = "id"

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"

	msgInvalidCredentials  = "email or password incorrect"
	msgPasswordProcessFail = "failed to process password"
	msgCreateAccountFail   = "failed to create account"
	msgIssueTokenFail      = "failed to issue session token"
	msgTokenNotFound       = "token not found"
	msgSessionNotFound     = "session not found"
	msgLogoutFail          = "failed to log out"
	msgFetchProfileFail    = "failed to fetch profile"
	msgLoggedOut           = "logged out successfully"
	msgEmailAlreadyExists  = "email already registered"

	msgForbidden = "you're not allowed to perform this action"
)

const (
	msgListProductsFail  = "failed to list products"
	msgFetchProductFail  = "failed to fetch product"
	msgCreateProductFail = "failed to create product"
	msgUpdateProductFail = "failed to update product"
	msgDeleteProductFail = "failed to delete product"
	msgProductNotExist   = "product not found"
	msgProductExists     = "product already exists"
	msgInvalidProductID  = "invalid product id"
	msgNegativePrice     = "price cannot be negative"

	msgListCategoriesFail = "failed to list categories"
	msgCreateCategoryFail = "failed to create category"
	msgUpdateCategoryFail = "failed to update category"
	msgDeleteCategoryFail = "failed to delete category"
	msgCategoryNotExist   = "category not found"
	msgCategoryExists     = "category already exists"
	msgInvalidCategoryID  = "invalid category id"

	msgListTagsFail  = "failed to list tags"
	msgCreateTagFail = "failed to create tag"
	msgDeleteTagFail = "failed to delete tag"
	msgTagNotExist   = "tag not found"
	msgTagExists     = "tag already exists"
	msgInvalidTagID  = "invalid tag id"
)

const (
	msgFetchCartFail   = "failed to fetch cart"
	msgUpdateCartFail  = "failed to update cart"
	msgProductNotFound = "product not found in cart payload"
	msgCartEmpty       = "cannot create order because your cart is empty"

	msgListOrdersFail   = "failed to list orders"
	msgFetchOrderFail   = "failed to fetch order"
	msgCreateOrderFail  = "failed to create order"
	msgOrderNotExist    = "order not found"
	msgInvalidOrderID   = "invalid order id"
	msgFetchInvoiceFail = "failed to fetch invoice"
	msgInvoiceNotExist  = "invoice not found"
	msgInvalidAddress   = "invalid delivery address"

	msgListAddressesFail = "failed to list delivery addresses"
	msgFetchAddressFail  = "failed to fetch delivery address"
	msgCreateAddressFail = "failed to create delivery address"
	msgUpdateAddressFail = "failed to update delivery address"
	msgDeleteAddressFail = "failed to delete delivery address"
	msgAddressNotExist   = "delivery address not found"
	msgInvalidAddressID  = "invalid delivery address id"

	msgUpdateUserFail = "failed to update user"
	msgUserNotExist   = "user not found"
	msgInvalidUserID  = "invalid user id"
)
