package models

// Mentor defines a mentor account, stored in the 'mentors' collection
type Mentor struct {
	ID             string   `json:"_id" bson:"_id" db:"id"`
	Name           string   `json:"name" bson:"name" db:"name"`
	Email          string   `json:"email" bson:"email" db:"email"`
	Password       string   `json:"-" bson:"password" db:"password"` // bcrypt hash, never serialized
	Role           RoleType `json:"role" bson:"role" db:"role"`
	CreatedCourses []string `json:"createdCourses" bson:"createdCourses" db:"created_courses"`
}

// Student defines a student account, stored in the 'students' collection
type Student struct {
	ID            string   `json:"_id" bson:"_id" db:"id"`
	Name          string   `json:"name" bson:"name" db:"name"`
	Email         string   `json:"email" bson:"email" db:"email"`
	Password      string   `json:"-" bson:"password" db:"password"`
	Role          RoleType `json:"role" bson:"role" db:"role"`
	JoinedCourses []string `json:"joinedCourses" bson:"joinedCourses" db:"joined_courses"`
}

// User is the role-independent view of an account used by auth and profile
// operations.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     RoleType
	// CourseIDs holds createdCourses for mentors and joinedCourses for students
	CourseIDs []string
}

// MentorToUser converts a mentor record into a User
func MentorToUser(m *Mentor) *User {
	return &User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Role:      RoleMentor,
		CourseIDs: m.CreatedCourses,
	}
}

// StudentToUser converts a student record into a User
func StudentToUser(s *Student) *User {
	return &User{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Password:  s.Password,
		Role:      RoleStudent,
		CourseIDs: s.JoinedCourses,
	}
}
