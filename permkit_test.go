package permkit

// Shared test fixtures: three declared domains and a service with the
// roles used across the test files.

var (
	testUsers = NewDomain("Users")

	testUser    = testUsers.Object("User")
	userRead    = testUser.Action("Read", "View user information")
	userWrite   = testUser.Action("Write", "Modify user information")
	userCreate  = testUser.Action("Create", "Create new users")
	userDelete  = testUser.Action("Delete", "Delete users")
	userLock    = testUser.Action("Lock", "Lock/unlock user accounts")
	userArchive = testUser.Action("Archive", "Archive user accounts")

	testMethod     = testUsers.Object("Method")
	methodRead     = testMethod.Action("Read", "View authentication methods")
	methodWrite    = testMethod.Action("Write", "Modify authentication methods")
	methodDelete   = testMethod.Action("Delete", "Delete authentication methods")
	methodActivate = testMethod.Action("Activate", "Activate/deactivate methods")

	testNotify  = testUsers.Object("Notify")
	notifyWrite = testNotify.Action("Write", "Send notifications")
)

var (
	testTemplates = NewDomain("Templates")

	testTemplate   = testTemplates.Object("Template")
	templateRead   = testTemplate.Action("Read", "View templates")
	templateWrite  = testTemplate.Action("Write", "Modify templates")
	templateCreate = testTemplate.Action("Create", "Create new templates")
	templateDelete = testTemplate.Action("Delete", "Delete templates")
)

var (
	testOrders = NewDomain("Orders")

	testOrder   = testOrders.Object("Order")
	orderRead   = testOrder.Action("Read", "View orders")
	orderCreate = testOrder.Action("Create", "Create orders")
	orderUpdate = testOrder.Action("Update", "Update orders")
	orderCancel = testOrder.Action("Cancel", "Cancel orders")

	testOrderItem   = testOrders.Object("OrderItem")
	orderItemRead   = testOrderItem.Action("Read", "View order items")
	orderItemAdd    = testOrderItem.Action("Add", "Add items to order")
	orderItemRemove = testOrderItem.Action("Remove", "Remove items from order")

	testInvoice     = testOrders.Object("Invoice")
	invoiceRead     = testInvoice.Action("Read", "View invoices")
	invoiceGenerate = testInvoice.Action("Generate", "Generate invoices")
	invoiceSend     = testInvoice.Action("Send", "Send invoices to customers")
)

// allTestPermissions enumerates every declared fixture permission.
func allTestPermissions() []Permission {
	var perms []Permission
	for _, d := range []*Domain{testUsers, testTemplates, testOrders} {
		perms = append(perms, d.Permissions()...)
	}
	return perms
}

// newTestService builds a service with the standard fixture roles.
func newTestService() *Service {
	return NewBuilder().
		RegisterDomain(testUsers, testTemplates, testOrders).
		AddRole(NewRole("UserManager",
			"Users::User::*",
			"Users::Method::*",
		)).
		AddRole(NewRole("TemplateCreator",
			"Templates::Template::{Create,Write}",
			"Users::Notify::Write",
		)).
		AddRole(NewRole("OrderManager",
			"Orders::Order::*",
			"Orders::OrderItem::*",
			"Orders::Invoice::{Read,Generate}",
		)).
		AddRole(NewRole("Admin", "*")).
		Build()
}
