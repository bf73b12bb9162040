package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/repository"
)

// BookingServiceTestSuite defines the test suite for BookingService
type BookingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *BookingService

	venue  *models.Venue
	now    time.Time
}

// SetupTest runs before each test
func (suite *BookingServiceTestSuite) SetupTest() {
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
		&models.Booking{},
	)
	suite.Require().NoError(err)

	suite.service = NewBookingService(
		repository.NewBookingRepository(suite.db),
		repository.NewVenueRepository(suite.db),
		repository.NewOrganisationRepository(suite.db),
		repository.NewAccessRepository(suite.db),
		policy.DefaultSlotRules(),
	)

	// Pin the clock one day before the bookings under test
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }

	suite.venue = &models.Venue{Name: "Meeting Room 1", Unit: "01-01"}
	suite.Require().NoError(suite.db.Create(suite.venue).Error)

}

// TearDownTest runs after each test
func (suite *BookingServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BookingServiceTestSuite) createTestUser(name string) *models.User {
	user := &models.User{
		Name:             name,
		TelegramUserName: name,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *BookingServiceTestSuite) createTestOrg(slug string, adminOrg bool) *models.Organisation {
	org := &models.Organisation{
		Name:       slug,
		Slug:       slug,
		Category:   models.CategoryInterestGroup,
		IsAdminOrg: adminOrg,
	}
	suite.Require().NoError(suite.db.Create(org).Error)
	return org
}

func (suite *BookingServiceTestSuite) addMember(user *models.User, org *models.Organisation, isIGHead bool) {
	member := &models.UserOnOrg{
		UserID:     user.ID,
		OrgID:      org.ID,
		IsIGHead:   isIGHead,
		AssignedAt: suite.now,
	}
	suite.Require().NoError(suite.db.Create(member).Error)
}

// at returns a booking time on the day after the pinned clock
func (suite *BookingServiceTestSuite) at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func (suite *BookingServiceTestSuite) seedBooking(user *models.User, org *models.Organisation, start, end time.Time) *models.Booking {
	booking := &models.Booking{
		EventName: "Seeded",
		VenueID:   suite.venue.ID,
		UserID:    user.ID,
		UserOrgID: org.ID,
		Start:     start,
		End:       end,
		BookedAt:  suite.now,
	}
	suite.Require().NoError(suite.db.Create(booking).Error)
	return booking
}

func (suite *BookingServiceTestSuite) TestAddBookingSuccess() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	booking, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Weekly Meeting",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(10, 0),
		End:       suite.at(11, 0),
	})

	suite.NoError(err)
	suite.Require().NotNil(booking)
	suite.Equal(org.ID, booking.UserOrgID)
	suite.Nil(booking.BookedForOrgID)

	var count int64
	suite.db.Model(&models.Booking{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *BookingServiceTestSuite) TestAddBookingOverlapRejected() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	other := suite.createTestOrg("debate", false)
	suite.seedBooking(suite.createTestUser("bob"), other, suite.at(10, 0), suite.at(11, 0))

	_, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Clashing",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(10, 30),
		End:       suite.at(11, 30),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindConflict))
	suite.Equal(MsgBookingConflict, err.Error())
}

func (suite *BookingServiceTestSuite) TestAddBookingBackToBackDifferentOrgs() {
	// [10:00, 11:00) and [11:00, 12:00) share only the boundary instant
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	other := suite.createTestOrg("debate", false)
	suite.seedBooking(suite.createTestUser("bob"), other, suite.at(10, 0), suite.at(11, 0))

	booking, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "After",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(11, 0),
		End:       suite.at(12, 0),
	})

	suite.NoError(err)
	suite.NotNil(booking)
}

func (suite *BookingServiceTestSuite) TestAddBookingSameOrgStackingRejected() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	_, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Back To Back",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(11, 0),
		End:       suite.at(12, 0),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindConflict))
	suite.Contains(err.Error(), "must be at least 30 minutes apart")
}

func (suite *BookingServiceTestSuite) TestAddBookingSameOrgGapAllowed() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	booking, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Gapped",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(11, 30),
		End:       suite.at(12, 30),
	})

	suite.NoError(err)
	suite.NotNil(booking)
}

func (suite *BookingServiceTestSuite) TestAddBookingAdminOrgStackingExempt() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("student-council", true)
	suite.addMember(user, org, false)

	suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	booking, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Back To Back",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(11, 0),
		End:       suite.at(12, 0),
	})

	suite.NoError(err)
	suite.NotNil(booking)
}

func (suite *BookingServiceTestSuite) TestAddBookingRetargetsForeignOrg() {
	user := suite.createTestUser("alice")
	adminOrg := suite.createTestOrg("student-council", true)
	suite.addMember(user, adminOrg, false)

	foreign := suite.createTestOrg("chess", false)

	booking, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "On Behalf",
		VenueID:   suite.venue.ID,
		UserOrgID: foreign.ID,
		Start:     suite.at(10, 0),
		End:       suite.at(11, 0),
	})

	suite.Require().NoError(err)
	suite.Equal(adminOrg.ID, booking.UserOrgID)
	suite.Require().NotNil(booking.BookedForOrgID)
	suite.Equal(foreign.ID, *booking.BookedForOrgID)

	var stored models.Booking
	suite.Require().NoError(suite.db.First(&stored, booking.ID).Error)
	suite.Equal(adminOrg.ID, stored.UserOrgID)
	suite.Require().NotNil(stored.BookedForOrgID)
	suite.Equal(foreign.ID, *stored.BookedForOrgID)
}

func (suite *BookingServiceTestSuite) TestAddBookingPrivilegedSkipsMaxDuration() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("student-council", true)
	suite.addMember(user, org, false)

	// Three hours, beyond the regular four-slot cap
	booking, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Orientation",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(10, 0),
		End:       suite.at(13, 0),
	})

	suite.NoError(err)
	suite.NotNil(booking)
}

func (suite *BookingServiceTestSuite) TestAddBookingTooLongForMember() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	_, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Marathon",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(10, 0),
		End:       suite.at(13, 0),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindConflict))
	suite.Contains(err.Error(), "cannot be longer than 120 minutes")
}

func (suite *BookingServiceTestSuite) TestAddBookingTooFarInAdvance() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	start := suite.now.Add(15 * 24 * time.Hour)
	_, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Distant",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     start,
		End:       start.Add(time.Hour),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindConflict))
	suite.Contains(err.Error(), "days in advance")
}

func (suite *BookingServiceTestSuite) TestAddBookingMisaligned() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	_, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Off Grid",
		VenueID:   suite.venue.ID,
		UserOrgID: org.ID,
		Start:     suite.at(10, 0),
		End:       suite.at(10, 45),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *BookingServiceTestSuite) TestAddBookingVenueNotFound() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	_, err := suite.service.AddBooking(context.Background(), user, AddBookingInput{
		EventName: "Nowhere",
		VenueID:   999,
		UserOrgID: org.ID,
		Start:     suite.at(10, 0),
		End:       suite.at(11, 0),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *BookingServiceTestSuite) TestUpdateBookingExcludesItself() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	booking := suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	// Shrinking within the original window overlaps only the booking itself
	updated, err := suite.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{
		EventName: "Shorter Meeting",
		Start:     suite.at(10, 0),
		End:       suite.at(10, 30),
	})

	suite.Require().NoError(err)
	suite.Equal("Shorter Meeting", updated.EventName)
	suite.True(updated.End.Equal(suite.at(10, 30)))
}

func (suite *BookingServiceTestSuite) TestUpdateBookingConflict() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	booking := suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))
	other := suite.createTestOrg("debate", false)
	suite.seedBooking(suite.createTestUser("bob"), other, suite.at(12, 0), suite.at(13, 0))

	_, err := suite.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{
		EventName: "Moved",
		Start:     suite.at(12, 30),
		End:       suite.at(13, 30),
	})

	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindConflict))
}

func (suite *BookingServiceTestSuite) TestDestroyBooking() {
	user := suite.createTestUser("alice")
	org := suite.createTestOrg("chess", false)
	suite.addMember(user, org, false)

	booking := suite.seedBooking(user, org, suite.at(10, 0), suite.at(11, 0))

	suite.NoError(suite.service.DestroyBooking(context.Background(), booking.ID))

	_, err := suite.service.GetBooking(booking.ID)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *BookingServiceTestSuite) TestDestroyBookingNotFound() {
	err := suite.service.DestroyBooking(context.Background(), 424242)
	suite.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (suite *BookingServiceTestSuite) TestCanManageBooking() {
	owner := suite.createTestUser("alice")
	head := suite.createTestUser("heidi")
	outsider := suite.createTestUser("mallory")
	org := suite.createTestOrg("chess", false)
	suite.addMember(owner, org, false)
	suite.addMember(head, org, true)
	suite.addMember(outsider, org, false)

	booking := suite.seedBooking(owner, org, suite.at(10, 0), suite.at(11, 0))

	ok, err := suite.service.CanManageBooking(context.Background(), owner, booking)
	suite.NoError(err)
	suite.True(ok)

	ok, err = suite.service.CanManageBooking(context.Background(), head, booking)
	suite.NoError(err)
	suite.True(ok)

	ok, err = suite.service.CanManageBooking(context.Background(), outsider, booking)
	suite.NoError(err)
	suite.False(ok)

	ok, err = suite.service.CanManageBooking(context.Background(), nil, booking)
	suite.NoError(err)
	suite.False(ok)
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
