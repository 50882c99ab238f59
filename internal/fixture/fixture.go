// Package fixture holds the demo data loaded by cmd/seed and used by repository tests.
package fixture

import "github.com/oksasatya/go-todo-cards/internal/domain/entity"

type User struct {
	Email, Password, Nickname string
}

// Users are the two demo accounts. Card.Owner indexes into this slice.
var Users = []User{
	{Email: "user1@naver.com", Password: "password1", Nickname: "user1"},
	{Email: "user2@gmail.com", Password: "password2", Nickname: "user2"},
}

type Card struct {
	Title, Description string
	Owner              int
	Completed          bool
	Category           entity.Category
}

// Cards holds fifteen cards: 5 mention "계획", 3 are EXERCISE, 9 are not completed.
var Cards = []Card{
	{"06/24 오늘의 헬스 진행 계획", "벤치프레스 5세트, 덤벨프레스 5세트 계획", 0, false, entity.CategoryExercise},
	{"06/24 공부 계획", "알고리즘 문제 풀기, 데이터베이스 복습", 1, false, entity.CategoryStudy},
	{"06/24 직장 업무", "주간 보고서 작성, 회의 준비", 0, true, entity.CategoryWork},
	{"06/24 친구와의 약속", "저녁 식사, 영화 보기", 1, false, entity.CategoryPromise},
	{"06/25 기타 할 일", "은행 업무, 쇼핑", 0, true, entity.CategoryOther},
	{"06/26 운동 계획", "스쿼트 5세트, 데드리프트 5세트", 1, false, entity.CategoryExercise},
	{"06/26 공부 계획", "자바 프로그래밍 복습, 코딩 테스트 준비", 0, false, entity.CategoryStudy},
	{"07/01 업무 계획", "프로젝트 미팅, 코드 리뷰", 1, true, entity.CategoryWork},
	{"07/01 약속", "오랜만의 친구와 저녁", 0, false, entity.CategoryPromise},
	{"07/01 기타", "집 청소, 정리 정돈", 1, true, entity.CategoryOther},
	{"07/02 운동", "유산소 운동, 스트레칭", 0, false, entity.CategoryExercise},
	{"07/02 학습", "데이터 사이언스 공부, 통계 복습", 1, false, entity.CategoryStudy},
	{"07/03 직장 업무", "클라이언트 회의, 코드 배포", 0, true, entity.CategoryWork},
	{"07/03 친구와의 약속", "카페에서 대화, 산책", 1, false, entity.CategoryPromise},
	{"07/07 기타 할 일", "서류 정리, 물건 정리", 0, true, entity.CategoryOther},
}
