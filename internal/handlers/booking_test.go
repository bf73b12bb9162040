package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/constants"
	"github.com/orgspace/orgspace-api/internal/database"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/registry"
	"github.com/orgspace/orgspace-api/internal/repository"
	"github.com/orgspace/orgspace-api/internal/services"
)

// BookingHandlerTestSuite defines the test suite for BookingHandler
type BookingHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BookingHandler
	service *services.BookingService

	venue *models.Venue
	now   time.Time
}

// SetupTest runs before each test
func (suite *BookingHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organisation{},
		&models.UserOnOrg{},
		&models.Ability{},
		&models.Role{},
		&models.RoleAbility{},
		&models.OrgRole{},
		&models.Venue{},
		&models.VenueAdminRole{},
		&models.Booking{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	dir := repository.NewAccessRepository(suite.db)
	gate := policy.NewGate(dir)
	suite.service = services.NewBookingService(
		repository.NewBookingRepository(suite.db),
		repository.NewVenueRepository(suite.db),
		repository.NewOrganisationRepository(suite.db),
		dir,
		policy.DefaultSlotRules(),
	)
	suite.handler = NewBookingHandler(suite.service, gate, dir)

	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	suite.venue = &models.Venue{Name: "Function Hall", Unit: "02-01"}
	suite.Require().NoError(suite.db.Create(suite.venue).Error)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BookingHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *BookingHandlerTestSuite) createTestUser(name string) *models.User {
	user := &models.User{
		Name:             name,
		TelegramUserName: name,
	}
	suite.db.Create(user)
	return user
}

func (suite *BookingHandlerTestSuite) createTestOrg(slug string, adminOrg bool) *models.Organisation {
	org := &models.Organisation{
		Name:       slug,
		Slug:       slug,
		Category:   models.CategoryInterestGroup,
		IsAdminOrg: adminOrg,
	}
	suite.db.Create(org)
	return org
}

func (suite *BookingHandlerTestSuite) addMember(user *models.User, org *models.Organisation, isIGHead bool) {
	suite.db.Create(&models.UserOnOrg{
		UserID:     user.ID,
		OrgID:      org.ID,
		IsIGHead:   isIGHead,
		AssignedAt: suite.now,
	})
}

// grantRole attaches a named role, with the given abilities, to the
// organisation so every member holds it
func (suite *BookingHandlerTestSuite) grantRole(org *models.Organisation, roleName string, abilityNames ...string) {
	role := &models.Role{Name: roleName}
	suite.Require().NoError(suite.db.Create(role).Error)
	suite.Require().NoError(suite.db.Create(&models.OrgRole{OrgID: org.ID, RoleID: role.ID}).Error)

	for _, name := range abilityNames {
		ability := &models.Ability{Name: name}
		suite.Require().NoError(suite.db.Where(models.Ability{Name: name}).FirstOrCreate(ability).Error)
		suite.Require().NoError(suite.db.Create(&models.RoleAbility{RoleID: role.ID, AbilityID: ability.ID}).Error)
	}
}

func (suite *BookingHandlerTestSuite) seedBooking(user *models.User, org *models.Organisation, start, end time.Time) *models.Booking {
	booking := &models.Booking{
		EventName: "Seeded",
		VenueID:   suite.venue.ID,
		UserID:    user.ID,
		UserOrgID: org.ID,
		Start:     start,
		End:       end,
		BookedAt:  suite.now,
	}
	suite.db.Create(booking)
	return booking
}

func (suite *BookingHandlerTestSuite) at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

// Helper function to create a request context; user nil means anonymous
func (suite *BookingHandlerTestSuite) createContext(method, url string, body interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
	}

	return c, w
}

func (suite *BookingHandlerTestSuite) bookingBody(orgID uint64, start, end time.Time) gin.H {
	return gin.H{
		"event_name":  "Test Event",
		"venue_id":    suite.venue.ID,
		"user_org_id": orgID,
		"start":       start.Format(time.RFC3339),
		"end":         end.Format(time.RFC3339),
	}
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_MemberDenied() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	c, w := suite.createContext("POST", "/api/bookings", suite.bookingBody(org.ID, suite.at(10, 0), suite.at(13, 0)), user)
	suite.handler.CreateBooking(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	// Both denial branches are reported
	assert.Contains(suite.T(), w.Body.String(), "Not authorized to create booking")
	assert.Contains(suite.T(), w.Body.String(), "canCreateBooking")
	assert.Contains(suite.T(), w.Body.String(), " OR ")
	assert.Contains(suite.T(), w.Body.String(), "organisation_head role")
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_OrgHeadWithinLimit() {
	head := suite.createTestUser("heidi")
	org := suite.createTestOrg("chess", false)
	suite.addMember(head, org, true)
	suite.grantRole(org, registry.RoleOrganisationHead)

	c, w := suite.createContext("POST", "/api/bookings", suite.bookingBody(org.ID, suite.at(10, 0), suite.at(12, 0)), head)
	suite.handler.CreateBooking(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var count int64
	suite.db.Model(&models.Booking{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_OrgHeadOverLimit() {
	head := suite.createTestUser("heidi")
	org := suite.createTestOrg("chess", false)
	suite.addMember(head, org, true)
	suite.grantRole(org, registry.RoleOrganisationHead)

	c, w := suite.createContext("POST", "/api/bookings", suite.bookingBody(org.ID, suite.at(10, 0), suite.at(13, 0)), head)
	suite.handler.CreateBooking(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Organisation heads can only book up to 120 minutes")
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_BookingAdmin() {
	admin := suite.createTestUser("bob")
	org := suite.createTestOrg("booking-committee", false)
	suite.addMember(admin, org, false)
	suite.grantRole(org, registry.RoleBookingAdmin, registry.CanCreateBooking)

	c, w := suite.createContext("POST", "/api/bookings", suite.bookingBody(org.ID, suite.at(10, 0), suite.at(14, 0)), admin)
	suite.handler.CreateBooking(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_Anonymous() {
	org := suite.createTestOrg("chess", false)

	c, w := suite.createContext("POST", "/api/bookings", suite.bookingBody(org.ID, suite.at(10, 0), suite.at(11, 0)), nil)
	suite.handler.CreateBooking(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "User is not logged in")
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_Conflict() {
	admin := suite.createTestUser("bob")
	org := suite.createTestOrg("booking-committee", false)
	suite.addMember(admin, org, false)
	suite.grantRole(org, registry.RoleBookingAdmin, registry.CanCreateBooking)

	other := suite.createTestOrg("chess", false)
	suite.seedBooking(suite.createTestUser("alice"), other, suite.at(10, 0), suite.at(11, 0))

	c, w := suite.createContext("POST", "/api/bookings", suite.bookingBody(org.ID, suite.at(10, 30), suite.at(11, 30)), admin)
	suite.handler.CreateBooking(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "overlaps with an existing booking")
}

func (suite *BookingHandlerTestSuite) TestDeleteBooking_Anonymous() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)
	suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	c, w := suite.createContext("DELETE", "/api/bookings/1", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteBooking(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "User is not logged in")
}

func (suite *BookingHandlerTestSuite) TestDeleteBooking_Owner() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)
	suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	c, w := suite.createContext("DELETE", "/api/bookings/1", nil, user)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteBooking(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Booking{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *BookingHandlerTestSuite) TestDeleteBooking_OtherMemberDenied() {
	owner := suite.createTestUser("alice")
	stranger := suite.createTestUser("mallory")
	org := suite.createTestOrg("chess", false)
	suite.addMember(owner, org, false)
	suite.addMember(stranger, org, false)
	suite.seedBooking(owner, org, suite.at(10, 0), suite.at(11, 0))

	c, w := suite.createContext("DELETE", "/api/bookings/1", nil, stranger)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteBooking(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Not authorized to delete booking")
}

func (suite *BookingHandlerTestSuite) TestDeleteBooking_VenueAdmin() {
	owner := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(owner, org, false)
	suite.seedBooking(owner, org, suite.at(10, 0), suite.at(11, 0))

	// A custodian role with admin rights over this venue
	custodian := suite.createTestUser("carol")
	custodianOrg := suite.createTestOrg("facilities", false)
	suite.addMember(custodian, custodianOrg, false)
	role := &models.Role{Name: "facilities_custodian"}
	suite.Require().NoError(suite.db.Create(role).Error)
	suite.Require().NoError(suite.db.Create(&models.OrgRole{OrgID: custodianOrg.ID, RoleID: role.ID}).Error)
	suite.Require().NoError(suite.db.Create(&models.VenueAdminRole{VenueID: suite.venue.ID, RoleID: role.ID}).Error)

	c, w := suite.createContext("DELETE", "/api/bookings/1", nil, custodian)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteBooking(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *BookingHandlerTestSuite) TestGetBooking_NotFound() {
	c, w := suite.createContext("GET", "/api/bookings/99", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	suite.handler.GetBooking(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
